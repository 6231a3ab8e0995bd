// Package frame drives the per-frame sequence of polling input, editing
// colors, synchronizing them with the device and drawing.
package frame

import (
	"io/fs"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/palette"
	"github.com/hexaflex/tricolor/scene"
	"github.com/hexaflex/tricolor/ssbo"
)

// Window is the window and context the loop presents to.
type Window interface {
	ShouldClose() bool
	PollEvents()
	FramebufferSize() (int, int)
	SwapBuffers()
}

// UI builds the color editors once per frame.
type UI interface {
	// NewFrame begins a new UI frame.
	NewFrame()

	// Layout presents an editor for each color in p and ends the layout.
	// It returns the edits the user made in this frame. It must not issue
	// any draw calls.
	Layout(p palette.Palette) []palette.Edit

	// Draw composites the UI on top of the current framebuffer.
	Draw()

	// Shutdown releases UI resources.
	Shutdown()
}

// Options defines the startup state of a loop.
type Options struct {
	Colors         palette.Palette // Initial vertex colors.
	Background     mgl32.Vec4      // Framebuffer clear color.
	Binding        uint32          // Shader storage binding point of the color buffer.
	VertexShader   string          // Vertex shader path.
	FragmentShader string          // Fragment shader path.
}

// Loop defines the rendering context. It owns the color state, the color
// buffer and the triangle.
type Loop struct {
	dev      gpu.Device
	window   Window
	ui       UI
	opt      Options
	colors   palette.Palette
	buffer   *ssbo.Buffer
	triangle *scene.Triangle
	frames   uint64
	pending  bool // Colors changed outside of the UI and must be pushed.
}

// New creates a new loop. Init must be called before the first frame.
func New(dev gpu.Device, window Window, ui UI, opt Options) *Loop {
	buffer := ssbo.New(dev)
	return &Loop{
		dev:      dev,
		window:   window,
		ui:       ui,
		opt:      opt,
		colors:   opt.Colors,
		buffer:   buffer,
		triangle: scene.NewTriangle(dev, buffer, opt.Binding),
	}
}

// Init builds the triangle and uploads the initial colors.
// Nothing this allocated is left on the device if it fails.
func (l *Loop) Init(fsys fs.FS) error {
	log.Println("loading shaders", l.opt.VertexShader, l.opt.FragmentShader)

	if err := l.triangle.Init(fsys, l.opt.VertexShader, l.opt.FragmentShader); err != nil {
		return errors.Wrapf(err, "failed to initialize triangle")
	}

	if err := l.buffer.Create(l.colors.Bytes()); err != nil {
		l.triangle.Shutdown()
		return errors.Wrapf(err, "failed to create color buffer")
	}

	l.buffer.BindBase(l.opt.Binding)
	return nil
}

// Run runs frames until the window is asked to close.
func (l *Loop) Run() {
	for !l.window.ShouldClose() {
		l.Frame()
	}
}

// Frame performs one iteration of poll, edit, sync, draw and present.
//
// Edits made through the UI are pushed to the color buffer before the
// triangle is drawn, so the frame always shows its own edits.
func (l *Loop) Frame() {
	l.window.PollEvents()

	l.ui.NewFrame()
	edits := l.ui.Layout(l.colors)

	dirty := l.colors.Apply(edits) || l.pending
	if dirty {
		l.buffer.Update(l.colors.Bytes())
		l.pending = false
	}

	width, height := l.window.FramebufferSize()
	bg := l.opt.Background
	l.dev.Viewport(0, 0, int32(width), int32(height))
	l.dev.ClearColor(bg[0], bg[1], bg[2], bg[3])
	l.dev.Clear(gpu.ColorBufferBit)

	l.triangle.Render()
	l.ui.Draw()

	l.window.SwapBuffers()
	l.frames++
}

// Reset restores the initial colors. They are pushed to the device in the next frame.
func (l *Loop) Reset() {
	l.colors = l.opt.Colors
	l.pending = true
}

// Colors returns the current vertex colors.
func (l *Loop) Colors() palette.Palette {
	return l.colors
}

// Frames returns the number of frames presented so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Shutdown releases the UI, the triangle and the color buffer, in that order.
// The window is owned by the caller and must be destroyed afterwards.
// It is safe to call more than once.
func (l *Loop) Shutdown() {
	if l.ui != nil {
		l.ui.Shutdown()
	}
	l.triangle.Shutdown()
	l.buffer.Destroy()
}
