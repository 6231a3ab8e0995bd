// Package gui implements the color editor panel with imgui.
package gui

import (
	"fmt"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/hexaflex/tricolor/palette"
)

// Title is the title of the color editor window.
const Title = "Triangle Colors"

// Various panel layout properties.
var (
	panelPos  = imgui.Vec2{X: 10, Y: 10}
	panelSize = imgui.Vec2{X: 360, Y: 160}
)

// Panel shows one color editor per triangle vertex.
type Panel struct {
	context  *imgui.Context
	window   *glfw.Window
	platform *platform
	renderer *renderer
	info     string
}

// New creates a panel drawing into the given window. glslVersion is the
// GLSL version directive for the UI shaders, e.g. "#version 460 core".
// info is shown below the color editors.
//
// Key events the UI does not consume are passed on to the key
// callback installed on window before this call.
func New(window *glfw.Window, glslVersion, info string) (*Panel, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	imgui.StyleColorsDark()

	r, err := newRenderer(io, glslVersion)
	if err != nil {
		context.Destroy()
		return nil, err
	}

	return &Panel{
		context:  context,
		window:   window,
		platform: newPlatform(io, window),
		renderer: r,
		info:     info,
	}, nil
}

// NewFrame begins a new UI frame.
func (p *Panel) NewFrame() {
	p.platform.newFrame()
	imgui.NewFrame()
}

// Layout builds the color editors for colors and ends the UI frame.
// It returns an edit for every editor the user changed in this frame.
func (p *Panel) Layout(colors palette.Palette) []palette.Edit {
	var edits []palette.Edit

	imgui.SetNextWindowPosV(panelPos, imgui.ConditionAlways, imgui.Vec2{})
	imgui.SetNextWindowSizeV(panelSize, imgui.ConditionAlways)
	imgui.BeginV(Title, nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoSavedSettings)

	for i := range colors {
		col := [4]float32(colors[i])
		if imgui.ColorEdit4(fmt.Sprintf("Vertex %d Color", i), &col) {
			edits = append(edits, palette.Edit{Index: i, Color: col})
		}
	}

	if len(p.info) > 0 {
		imgui.Text(p.info)
	}

	imgui.End()
	imgui.Render()
	return edits
}

// Draw composites the UI onto the current framebuffer.
func (p *Panel) Draw() {
	dw, dh := p.window.GetSize()
	fw, fh := p.window.GetFramebufferSize()

	p.renderer.Render(
		[2]float32{float32(dw), float32(dh)},
		[2]float32{float32(fw), float32(fh)},
		imgui.RenderedDrawData(),
	)
}

// Shutdown releases UI resources. It is safe to call more than once.
func (p *Panel) Shutdown() {
	if p.context == nil {
		return
	}

	log.Println("gui shutdown")
	p.platform.dispose()
	p.renderer.dispose()
	p.context.Destroy()
	p.context = nil
}
