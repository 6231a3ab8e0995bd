// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"
	"strings"

	"github.com/hexaflex/tricolor/gpu"
)

// Buffer is the device-side state of a buffer object.
type Buffer struct {
	Target uint32
	Usage  uint32
	Data   []byte
}

// Binding identifies an indexed binding point.
type Binding struct {
	Target uint32
	Index  uint32
}

// Device records every call made to it and keeps enough object state
// to inspect buffer contents and count outstanding objects.
//
// The Fail* fields inject failures.
type Device struct {
	Buffers  map[uint32]*Buffer
	Arrays   map[uint32]bool
	Shaders  map[uint32]uint32 // name -> shader type
	Programs map[uint32]bool
	Bindings map[Binding]uint32
	Calls    []string // Names of the methods called, in order.

	Program     uint32 // Current program.
	VertexArray uint32 // Current vertex array.

	FailGenBuffer   bool
	FailVertexArray bool
	FailCompile     func(source string) string // Non-empty result fails compilation with that log.
	FailLink        string                     // Non-empty fails linking with this log.

	next uint32
}

var _ gpu.Device = &Device{}

// New creates an empty device.
func New() *Device {
	return &Device{
		Buffers:  make(map[uint32]*Buffer),
		Arrays:   make(map[uint32]bool),
		Shaders:  make(map[uint32]uint32),
		Programs: make(map[uint32]bool),
		Bindings: make(map[Binding]uint32),
	}
}

// Live returns the number of objects which have been created but not deleted.
func (d *Device) Live() int {
	return len(d.Buffers) + len(d.Arrays) + len(d.Shaders) + len(d.Programs)
}

// Bytes returns a copy of the contents of buf, or nil if it does not exist.
func (d *Device) Bytes(buf uint32) []byte {
	b, ok := d.Buffers[buf]
	if !ok {
		return nil
	}
	return append([]byte(nil), b.Data...)
}

// Count returns the number of times the named method was called.
func (d *Device) Count(name string) int {
	var n int
	for _, c := range d.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first call to name at or after from.
// Returns -1 if there is none.
func (d *Device) Index(name string, from int) int {
	for i := from; i < len(d.Calls); i++ {
		if d.Calls[i] == name {
			return i
		}
	}
	return -1
}

// Reset clears the call log.
func (d *Device) Reset() {
	d.Calls = d.Calls[:0]
}

func (d *Device) String() string {
	return strings.Join(d.Calls, " ")
}

func (d *Device) record(name string) {
	d.Calls = append(d.Calls, name)
}

func (d *Device) name() uint32 {
	d.next++
	return d.next
}

func (d *Device) GenBuffer() uint32 {
	d.record("GenBuffer")
	if d.FailGenBuffer {
		return 0
	}
	id := d.name()
	d.Buffers[id] = &Buffer{}
	return id
}

func (d *Device) DeleteBuffer(buf uint32) {
	d.record("DeleteBuffer")
	delete(d.Buffers, buf)
	for k, v := range d.Bindings {
		if v == buf {
			delete(d.Bindings, k)
		}
	}
}

func (d *Device) BufferData(target, buf uint32, data []byte, usage uint32) {
	d.record("BufferData")
	b := d.mustBuffer(buf)
	b.Target = target
	b.Usage = usage
	b.Data = append([]byte(nil), data...)
}

// BufferSubData panics on writes past the end of the buffer's storage,
// as that is undefined behaviour on a real device.
func (d *Device) BufferSubData(target, buf uint32, offset int, data []byte) {
	d.record("BufferSubData")
	b := d.mustBuffer(buf)
	if offset < 0 || offset+len(data) > len(b.Data) {
		panic(fmt.Sprintf("gputest: BufferSubData out of range: offset %d size %d capacity %d",
			offset, len(data), len(b.Data)))
	}
	copy(b.Data[offset:], data)
}

func (d *Device) BindBufferBase(target, index, buf uint32) {
	d.record("BindBufferBase")
	d.mustBuffer(buf)
	d.Bindings[Binding{target, index}] = buf
}

func (d *Device) GenVertexArray() uint32 {
	d.record("GenVertexArray")
	if d.FailVertexArray {
		return 0
	}
	id := d.name()
	d.Arrays[id] = true
	return id
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray")
	delete(d.Arrays, vao)
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray")
	d.VertexArray = vao
}

func (d *Device) VertexAttribFloat(buf, index uint32, size, stride int32, offset int) {
	d.record("VertexAttribFloat")
	d.mustBuffer(buf)
}

func (d *Device) CreateShader(stype uint32) uint32 {
	d.record("CreateShader")
	id := d.name()
	d.Shaders[id] = stype
	return id
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader")
	delete(d.Shaders, shader)
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	d.record("CompileShader")
	if d.FailCompile != nil {
		if log := d.FailCompile(source); log != "" {
			return false, log
		}
	}
	return true, ""
}

func (d *Device) CreateProgram() uint32 {
	d.record("CreateProgram")
	id := d.name()
	d.Programs[id] = true
	return id
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram")
	delete(d.Programs, program)
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader")
}

func (d *Device) LinkProgram(program uint32) (bool, string) {
	d.record("LinkProgram")
	if d.FailLink != "" {
		return false, d.FailLink
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram")
	d.Program = program
}

func (d *Device) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays")
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport")
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
}

func (d *Device) Clear(mask uint32) {
	d.record("Clear")
}

func (d *Device) mustBuffer(buf uint32) *Buffer {
	b, ok := d.Buffers[buf]
	if !ok {
		panic(fmt.Sprintf("gputest: unknown buffer %d", buf))
	}
	return b
}
