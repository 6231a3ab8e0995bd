// Package scene owns the triangle's shader program and vertex data.
package scene

import (
	"io/fs"
	"log"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/ssbo"
)

// Known error conditions.
var (
	ErrShaderSource = errors.New("scene: missing or empty shader source")
	ErrInitialized  = errors.New("scene: already initialized")
)

// positionAttrib is the vertex attribute location of the position input.
const positionAttrib = 0

var vertices = []mgl32.Vec3{
	{0.0, 0.5, 0.0},
	{0.5, -0.5, 0.0},
	{-0.5, -0.5, 0.0},
}

// Triangle draws a single triangle whose vertex colors are read from
// a shader storage buffer.
type Triangle struct {
	dev     gpu.Device
	colors  *ssbo.Buffer
	binding uint32
	program uint32
	vao     uint32
	vbo     uint32
}

// NewTriangle creates a triangle which sources its colors from the given
// buffer at the given binding point.
func NewTriangle(dev gpu.Device, colors *ssbo.Buffer, binding uint32) *Triangle {
	return &Triangle{
		dev:     dev,
		colors:  colors,
		binding: binding,
	}
}

// Init reads the vertex and fragment shader sources from fsys, builds
// the program and uploads the vertex positions.
//
// Nothing is left allocated on the device if this fails.
func (t *Triangle) Init(fsys fs.FS, vertex, fragment string) error {
	if t.program != 0 {
		return ErrInitialized
	}

	vsrc, err := readSource(fsys, vertex)
	if err != nil {
		return err
	}

	fsrc, err := readSource(fsys, fragment)
	if err != nil {
		return err
	}

	t.program, err = gpu.CompileProgram(t.dev, vsrc, fsrc)
	if err != nil {
		return errors.Wrapf(err, "%s, %s", vertex, fragment)
	}

	if err := t.initGeometry(); err != nil {
		t.Shutdown()
		return err
	}

	return nil
}

func (t *Triangle) initGeometry() error {
	t.vao = t.dev.GenVertexArray()
	if t.vao == 0 {
		return errors.Wrapf(gpu.ErrAlloc, "vertex array")
	}

	t.vbo = t.dev.GenBuffer()
	if t.vbo == 0 {
		return errors.Wrapf(gpu.ErrAlloc, "vertex buffer")
	}

	const stride = int32(unsafe.Sizeof(mgl32.Vec3{}))
	data := unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(stride))

	t.dev.BindVertexArray(t.vao)
	t.dev.BufferData(gpu.ArrayBuffer, t.vbo, data, gpu.StaticDraw)
	t.dev.VertexAttribFloat(t.vbo, positionAttrib, 3, stride, 0)
	t.dev.BindVertexArray(0)
	return nil
}

// Render draws the triangle. It does nothing if the triangle has not
// been initialized.
func (t *Triangle) Render() {
	if t.program == 0 || t.vao == 0 {
		return
	}

	t.dev.UseProgram(t.program)
	t.colors.BindBase(t.binding)
	t.dev.BindVertexArray(t.vao)
	t.dev.DrawArrays(gpu.Triangles, 0, int32(len(vertices)))
	t.dev.BindVertexArray(0)
	t.dev.UseProgram(0)
}

// Shutdown releases the program and vertex data. It does not touch the
// color buffer. It is safe to call more than once.
func (t *Triangle) Shutdown() {
	if t.program != 0 {
		t.dev.DeleteProgram(t.program)
		t.program = 0
	}

	if t.vbo != 0 {
		t.dev.DeleteBuffer(t.vbo)
		t.vbo = 0
	}

	if t.vao != 0 {
		t.dev.DeleteVertexArray(t.vao)
		t.vao = 0
	}
}

// Initialized returns true if the triangle is ready to render.
func (t *Triangle) Initialized() bool {
	return t.program != 0 && t.vao != 0
}

// readSource reads a shader source file. Missing and empty files are errors.
func readSource(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		log.Println("scene: failed to read shader:", err)
		return "", errors.Wrapf(ErrShaderSource, "%s", name)
	}

	if len(data) == 0 {
		log.Println("scene: shader file is empty:", name)
		return "", errors.Wrapf(ErrShaderSource, "%s", name)
	}

	return string(data), nil
}
