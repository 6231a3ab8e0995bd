package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/config"
	"github.com/hexaflex/tricolor/frame"
	"github.com/hexaflex/tricolor/gpu/opengl"
	"github.com/hexaflex/tricolor/gui"
)

// glslVersion is the GLSL version directive matching the requested context.
const glslVersion = "#version 460 core"

// App defines application context.
type App struct {
	config       *config.Config // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	panel        *gui.Panel     // Color editor UI.
	loop         *frame.Loop    // Triangle, color state and frame sequencing.
	titleUpdated time.Time      // Value used to periodically update window title.
	titleFrames  uint64         // Frame count at the last title update.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *config.Config) *App {
	return &App{config: config}
}

// Run runs the application and does not return until the window is
// closed or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	log.Println(a.config)
	printHelp()

	if err := a.initScene(); err != nil {
		return err
	}

	a.titleUpdated = time.Now()
	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.loop.Frame()

	// Periodically update the window title to show the current frame rate.
	if elapsed := time.Since(a.titleUpdated); elapsed >= time.Second*2 {
		frames := a.loop.Frames()
		rate := float64(frames-a.titleFrames) / elapsed.Seconds()
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", a.config.Title, AppVersion, prettyRate(rate)))
		a.titleUpdated = time.Now()
		a.titleFrames = frames
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
// Resources are released in reverse order of creation.
func (a *App) dispose() {
	if a.loop != nil {
		a.loop.Shutdown()
	} else if a.panel != nil {
		a.panel.Shutdown()
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyR:
		if a.loop != nil {
			log.Println("resetting colors")
			a.loop.Reset()
		}
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(errWindow, "glfw.Init failed: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	a.window, err = glfw.CreateWindow(a.config.Width, a.config.Height, a.config.Title, nil, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(errWindow, "glfw.CreateWindow failed: %v", err)
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	if a.config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(errSubsystem, "gl.Init failed: %v", err)
	}

	log.Println("OpenGL", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// initScene creates the UI, the triangle and its color buffer.
func (a *App) initScene() error {
	c := a.config
	info := fmt.Sprintf("Shader: %s / %s",
		path.Join(c.ShaderDir, c.VertexShader), c.FragmentShader)

	var err error
	a.panel, err = gui.New(a.window, glslVersion, info)
	if err != nil {
		return errors.Wrapf(errSubsystem, "gui: %v", err)
	}

	a.loop = frame.New(opengl.New(), window{a.window}, a.panel, frame.Options{
		Colors:         c.Palette(),
		Background:     mgl32.Vec4(c.Background),
		VertexShader:   c.VertexShader,
		FragmentShader: c.FragmentShader,
	})

	return a.loop.Init(os.DirFS(c.ShaderDir))
}

// window adapts a GLFW window to frame.Window.
type window struct {
	*glfw.Window
}

func (window) PollEvents() {
	glfw.PollEvents()
}

func (w window) FramebufferSize() (int, int) {
	return w.GetFramebufferSize()
}

// printHelp writes a short overview of supported shortcut keys to the log.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" R        Reset vertex colors to their startup values.")
	log.Println(sb.String())
}

// prettyRate returns a human-readable version of the given frame rate.
func prettyRate(v float64) string {
	if v >= 1e3 {
		return fmt.Sprintf("%.2fk fps", v/1e3)
	}
	return fmt.Sprintf("%.1f fps", v)
}
