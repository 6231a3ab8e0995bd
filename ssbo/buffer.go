// Package ssbo manages a single shader storage buffer object.
package ssbo

import (
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
)

// Known error conditions.
var (
	ErrExists  = errors.New("ssbo: buffer already exists")
	ErrInvalid = errors.New("ssbo: empty buffer data")
)

// Buffer owns one device-resident shader storage buffer.
// Its capacity is fixed when it is created.
type Buffer struct {
	dev      gpu.Device
	handle   uint32
	capacity int
}

// New creates a buffer store for the given device. No device
// memory is allocated until Create is called.
func New(dev gpu.Device) *Buffer {
	return &Buffer{dev: dev}
}

// Create allocates a device buffer of exactly len(data) bytes and
// uploads data into it.
//
// It fails if a buffer already exists or data is empty. A failed call
// leaves any existing buffer untouched.
func (b *Buffer) Create(data []byte) error {
	if b.handle != 0 {
		return ErrExists
	}

	if len(data) == 0 {
		return ErrInvalid
	}

	handle := b.dev.GenBuffer()
	if handle == 0 {
		log.Println("ssbo: GenBuffer failed")
		return errors.Wrapf(gpu.ErrAlloc, "ssbo")
	}

	b.dev.BufferData(gpu.ShaderStorageBuffer, handle, data, gpu.DynamicDraw)
	b.handle = handle
	b.capacity = len(data)
	return nil
}

// Update overwrites the buffer contents from offset 0 and returns the
// number of bytes written. Input longer than the capacity is truncated;
// the buffer is never resized. This is a no-op if there is no buffer or
// data is empty.
func (b *Buffer) Update(data []byte) int {
	if b.handle == 0 || len(data) == 0 {
		return 0
	}

	if len(data) > b.capacity {
		data = data[:b.capacity]
	}

	b.dev.BufferSubData(gpu.ShaderStorageBuffer, b.handle, 0, data)
	return len(data)
}

// BindBase binds the buffer to the given shader storage binding point.
// Binding state is not preserved across other GPU state changes, so
// this must be called before every draw reading the buffer.
func (b *Buffer) BindBase(index uint32) {
	if b.handle == 0 {
		return
	}
	b.dev.BindBufferBase(gpu.ShaderStorageBuffer, index, b.handle)
}

// Destroy releases the device buffer. It is safe to call more than once.
func (b *Buffer) Destroy() {
	if b.handle != 0 {
		b.dev.DeleteBuffer(b.handle)
	}
	b.handle = 0
	b.capacity = 0
}

// Capacity returns the buffer size in bytes, or 0 if there is no buffer.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Handle returns the device buffer name, or 0 if there is no buffer.
func (b *Buffer) Handle() uint32 {
	return b.handle
}

// Live returns true if a device buffer currently exists.
func (b *Buffer) Live() bool {
	return b.handle != 0
}
