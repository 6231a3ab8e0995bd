package gui

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

var mouseButtons = [...]glfw.MouseButton{
	glfw.MouseButtonLeft,
	glfw.MouseButtonRight,
	glfw.MouseButtonMiddle,
}

// platform feeds GLFW window state and input events to imgui.
type platform struct {
	io               imgui.IO
	window           *glfw.Window
	time             float64
	mouseJustPressed [len(mouseButtons)]bool
	nextKey          glfw.KeyCallback // Key handler installed before ours.
}

func newPlatform(io imgui.IO, window *glfw.Window) *platform {
	p := &platform{
		io:     io,
		window: window,
	}

	p.mapKeys()

	window.SetMouseButtonCallback(p.mouseButtonChange)
	window.SetScrollCallback(p.mouseScrollChange)
	window.SetCharCallback(p.charChange)
	p.nextKey = window.SetKeyCallback(p.keyChange)
	return p
}

// dispose removes our input callbacks and restores the previous key handler.
func (p *platform) dispose() {
	p.window.SetMouseButtonCallback(nil)
	p.window.SetScrollCallback(nil)
	p.window.SetCharCallback(nil)
	p.window.SetKeyCallback(p.nextKey)
}

// newFrame updates display size, timing and mouse state for the next frame.
func (p *platform) newFrame() {
	width, height := p.window.GetSize()
	p.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})

	now := glfw.GetTime()
	if p.time > 0 {
		p.io.SetDeltaTime(float32(now - p.time))
	}
	p.time = now

	if p.window.GetAttrib(glfw.Focused) != 0 {
		x, y := p.window.GetCursorPos()
		p.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	// A press and release within one frame must still register as a click.
	for i, btn := range mouseButtons {
		down := p.mouseJustPressed[i] || p.window.GetMouseButton(btn) == glfw.Press
		p.io.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}
}

func (p *platform) mapKeys() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}

	for k, v := range keys {
		p.io.KeyMap(k, int(v))
	}
}

func (p *platform) mouseButtonChange(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	for i, btn := range mouseButtons {
		if btn == button && action == glfw.Press {
			p.mouseJustPressed[i] = true
		}
	}
}

func (p *platform) mouseScrollChange(_ *glfw.Window, x, y float64) {
	p.io.AddMouseWheelDelta(float32(x), float32(y))
}

func (p *platform) charChange(_ *glfw.Window, char rune) {
	p.io.AddInputCharacters(string(char))
}

// keyChange forwards key events to imgui. Events imgui does not want are
// passed on to the previously installed handler.
func (p *platform) keyChange(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		p.io.KeyPress(int(key))
	}
	if action == glfw.Release {
		p.io.KeyRelease(int(key))
	}

	p.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	p.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	p.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	p.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))

	if p.nextKey != nil && !p.io.WantCaptureKeyboard() {
		p.nextKey(w, key, scancode, action, mods)
	}
}
