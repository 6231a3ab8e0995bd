// Package opengl implements gpu.Device on top of an OpenGL 4.6 core context.
//
// gl.Init must have been called with a current context before any
// method is used, and all calls must come from the thread owning that context.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/hexaflex/tricolor/gpu"
)

// Device forwards gpu.Device calls to the current OpenGL context.
type Device struct{}

var _ gpu.Device = Device{}

// New creates a new device.
func New() Device {
	return Device{}
}

func (Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (Device) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (Device) BufferData(target, buf uint32, data []byte, usage uint32) {
	gl.BindBuffer(target, buf)
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
	gl.BindBuffer(target, 0)
}

func (Device) BufferSubData(target, buf uint32, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(target, buf)
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(target, 0)
}

func (Device) BindBufferBase(target, index, buf uint32) {
	gl.BindBufferBase(target, index, buf)
}

func (Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (Device) VertexAttribFloat(buf, index uint32, size, stride int32, offset int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (Device) CreateShader(stype uint32) uint32 {
	return gl.CreateShader(stype)
}

func (Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (Device) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, log
}

func (Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, log
}

func (Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Device) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (Device) Clear(mask uint32) {
	gl.Clear(mask)
}
