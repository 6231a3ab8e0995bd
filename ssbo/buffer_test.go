package ssbo

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/gpu/gputest"
)

func TestCreateCapacity(t *testing.T) {
	for _, size := range []int{1, 4, 48, 1000} {
		dev := gputest.New()
		b := New(dev)

		if err := b.Create(make([]byte, size)); err != nil {
			t.Fatal(err)
		}

		if b.Capacity() != size {
			t.Fatalf("capacity mismatch; have %d, want %d", b.Capacity(), size)
		}

		buf := dev.Buffers[b.Handle()]
		if buf == nil || buf.Target != gpu.ShaderStorageBuffer || buf.Usage != gpu.DynamicDraw {
			t.Fatalf("unexpected device buffer: %+v", buf)
		}
	}
}

func TestCreateTwice(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	first := []byte{1, 2, 3, 4}
	if err := b.Create(first); err != nil {
		t.Fatal(err)
	}
	handle := b.Handle()

	err := b.Create([]byte{9, 9, 9, 9, 9, 9, 9, 9})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("unexpected error; have %v, want %v", err, ErrExists)
	}

	if b.Handle() != handle || b.Capacity() != len(first) {
		t.Fatalf("buffer changed by failed create: handle %d capacity %d", b.Handle(), b.Capacity())
	}

	if have := dev.Bytes(handle); !bytes.Equal(have, first) {
		t.Fatalf("buffer contents changed; have %v, want %v", have, first)
	}

	if len(dev.Buffers) != 1 {
		t.Fatalf("expected one device buffer; have %d", len(dev.Buffers))
	}
}

func TestCreateInvalid(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	for _, data := range [][]byte{nil, {}} {
		if err := b.Create(data); !errors.Is(err, ErrInvalid) {
			t.Fatalf("unexpected error; have %v, want %v", err, ErrInvalid)
		}
	}

	if dev.Live() != 0 || b.Live() {
		t.Fatalf("expected nothing allocated")
	}
}

func TestCreateAllocFailure(t *testing.T) {
	dev := gputest.New()
	dev.FailGenBuffer = true
	b := New(dev)

	if err := b.Create([]byte{1}); !errors.Is(err, gpu.ErrAlloc) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrAlloc)
	}

	if b.Live() || b.Capacity() != 0 {
		t.Fatalf("expected no buffer")
	}
}

func TestUpdate(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	if err := b.Create([]byte{0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}

	if n := b.Update([]byte{1, 2, 3}); n != 3 {
		t.Fatalf("unexpected byte count; have %d, want 3", n)
	}

	want := []byte{1, 2, 3, 0, 0, 0}
	if have := dev.Bytes(b.Handle()); !bytes.Equal(have, want) {
		t.Fatalf("buffer mismatch; have %v, want %v", have, want)
	}
}

func TestUpdateTruncates(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	if err := b.Create(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}

	if n := b.Update([]byte{1, 2, 3, 4, 5, 6, 7, 8}); n != 4 {
		t.Fatalf("unexpected byte count; have %d, want 4", n)
	}

	want := []byte{1, 2, 3, 4}
	if have := dev.Bytes(b.Handle()); !bytes.Equal(have, want) {
		t.Fatalf("buffer mismatch; have %v, want %v", have, want)
	}

	if b.Capacity() != 4 {
		t.Fatalf("buffer was resized to %d", b.Capacity())
	}
}

func TestUpdateNoop(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	if n := b.Update([]byte{1}); n != 0 {
		t.Fatalf("update without buffer wrote %d bytes", n)
	}

	if err := b.Create([]byte{7}); err != nil {
		t.Fatal(err)
	}

	if n := b.Update(nil); n != 0 {
		t.Fatalf("empty update wrote %d bytes", n)
	}

	if dev.Count("BufferSubData") != 0 {
		t.Fatalf("unexpected device writes: %v", dev)
	}
}

func TestBindBase(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	b.BindBase(0)
	if dev.Count("BindBufferBase") != 0 {
		t.Fatalf("bind without buffer reached the device")
	}

	if err := b.Create([]byte{1}); err != nil {
		t.Fatal(err)
	}

	b.BindBase(3)
	if have := dev.Bindings[gputest.Binding{Target: gpu.ShaderStorageBuffer, Index: 3}]; have != b.Handle() {
		t.Fatalf("binding mismatch; have %d, want %d", have, b.Handle())
	}
}

func TestDestroyTwice(t *testing.T) {
	dev := gputest.New()
	b := New(dev)

	if err := b.Create([]byte{1, 2}); err != nil {
		t.Fatal(err)
	}

	b.Destroy()
	b.Destroy()

	if b.Capacity() != 0 || b.Live() {
		t.Fatalf("expected empty store; capacity %d", b.Capacity())
	}

	if dev.Live() != 0 {
		t.Fatalf("expected no live device objects; have %d", dev.Live())
	}

	if err := b.Create([]byte{3}); err != nil {
		t.Fatalf("create after destroy failed: %v", err)
	}
}
