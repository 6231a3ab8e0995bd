// Package gpu defines the subset of the OpenGL API used to draw the triangle
// and manage its color buffer.
package gpu

import "github.com/pkg/errors"

// OpenGL enum values used by this package and its callers.
// They mirror the values defined by the OpenGL 4.6 core profile.
const (
	ArrayBuffer         = 0x8892 // GL_ARRAY_BUFFER
	ShaderStorageBuffer = 0x90D2 // GL_SHADER_STORAGE_BUFFER
	StaticDraw          = 0x88E4 // GL_STATIC_DRAW
	DynamicDraw         = 0x88E8 // GL_DYNAMIC_DRAW
	VertexShader        = 0x8B31 // GL_VERTEX_SHADER
	FragmentShader      = 0x8B30 // GL_FRAGMENT_SHADER
	Triangles           = 0x0004 // GL_TRIANGLES
	Float               = 0x1406 // GL_FLOAT
	ColorBufferBit      = 0x4000 // GL_COLOR_BUFFER_BIT
)

// Known error conditions.
var (
	ErrAlloc   = errors.New("device object allocation failed")
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("program link failed")
)

// Device issues commands to a graphics context.
//
// Object names are never 0 for live objects. A method returning a
// name returns 0 if the object could not be created.
type Device interface {
	// GenBuffer creates a new buffer object.
	GenBuffer() uint32
	DeleteBuffer(buf uint32)

	// BufferData allocates storage for buf bound to target and fills it with data.
	BufferData(target, buf uint32, data []byte, usage uint32)

	// BufferSubData overwrites len(data) bytes of buf, starting at offset.
	BufferSubData(target, buf uint32, offset int, data []byte)

	// BindBufferBase binds buf to the indexed binding point of target.
	BindBufferBase(target, index, buf uint32)

	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)

	// VertexAttribFloat enables attribute index on the bound vertex array and
	// sources it from buf as size float components.
	VertexAttribFloat(buf, index uint32, size, stride int32, offset int)

	CreateShader(stype uint32) uint32
	DeleteShader(shader uint32)

	// CompileShader compiles source into shader. It returns the info log
	// when compilation fails.
	CompileShader(shader uint32, source string) (bool, string)

	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)

	// LinkProgram links program. It returns the info log when linking fails.
	LinkProgram(program uint32) (bool, string)
	UseProgram(program uint32)

	DrawArrays(mode uint32, first, count int32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
}
