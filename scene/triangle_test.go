package scene

import (
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/gpu/gputest"
	"github.com/hexaflex/tricolor/ssbo"
)

var shaders = fstest.MapFS{
	"tri.vert": {Data: []byte("#version 460 core\nvoid main() {}\n")},
	"tri.frag": {Data: []byte("#version 460 core\nvoid main() {}\n")},
	"empty":    {Data: nil},
}

func newTriangle(dev *gputest.Device) *Triangle {
	return NewTriangle(dev, ssbo.New(dev), 0)
}

func TestInit(t *testing.T) {
	dev := gputest.New()
	tri := newTriangle(dev)

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); err != nil {
		t.Fatal(err)
	}

	if !tri.Initialized() {
		t.Fatalf("expected triangle to be initialized")
	}

	// program, vertex array and vertex buffer.
	if n := dev.Live(); n != 3 {
		t.Fatalf("unexpected live object count; have %d, want 3", n)
	}

	vbo := dev.Buffers[tri.vbo]
	if vbo.Target != gpu.ArrayBuffer || len(vbo.Data) != 3*3*4 {
		t.Fatalf("unexpected vertex buffer: target %x, %d bytes", vbo.Target, len(vbo.Data))
	}

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); !errors.Is(err, ErrInitialized) {
		t.Fatalf("unexpected error; have %v, want %v", err, ErrInitialized)
	}
}

func TestInitMissingShader(t *testing.T) {
	for _, files := range [][2]string{
		{"missing.vert", "tri.frag"},
		{"tri.vert", "missing.frag"},
		{"empty", "tri.frag"},
	} {
		dev := gputest.New()
		tri := newTriangle(dev)

		err := tri.Init(shaders, files[0], files[1])
		if !errors.Is(err, ErrShaderSource) {
			t.Fatalf("%v: unexpected error; have %v, want %v", files, err, ErrShaderSource)
		}

		if n := dev.Live(); n != 0 {
			t.Fatalf("%v: expected no live objects; have %d", files, n)
		}

		if tri.Initialized() {
			t.Fatalf("%v: expected triangle to be uninitialized", files)
		}
	}
}

func TestInitCompileError(t *testing.T) {
	dev := gputest.New()
	dev.FailCompile = func(string) string { return "0:2: error" }
	tri := newTriangle(dev)

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); !errors.Is(err, gpu.ErrCompile) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrCompile)
	}

	if n := dev.Live(); n != 0 {
		t.Fatalf("expected no live objects; have %d", n)
	}
}

func TestInitLinkError(t *testing.T) {
	dev := gputest.New()
	dev.FailLink = "link failed"
	tri := newTriangle(dev)

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); !errors.Is(err, gpu.ErrLink) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrLink)
	}

	if n := dev.Live(); n != 0 {
		t.Fatalf("expected no live objects; have %d", n)
	}
}

func TestInitGeometryFailure(t *testing.T) {
	dev := gputest.New()
	dev.FailGenBuffer = true
	tri := newTriangle(dev)

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); !errors.Is(err, gpu.ErrAlloc) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrAlloc)
	}

	if n := dev.Live(); n != 0 {
		t.Fatalf("expected no live objects; have %d", n)
	}
}

func TestRender(t *testing.T) {
	dev := gputest.New()
	colors := ssbo.New(dev)
	tri := NewTriangle(dev, colors, 2)

	tri.Render()
	if len(dev.Calls) != 0 {
		t.Fatalf("uninitialized render reached the device: %v", dev)
	}

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); err != nil {
		t.Fatal(err)
	}

	if err := colors.Create(make([]byte, 48)); err != nil {
		t.Fatal(err)
	}

	dev.Reset()
	tri.Render()

	bind := dev.Index("BindBufferBase", 0)
	draw := dev.Index("DrawArrays", 0)
	if bind < 0 || draw < 0 || bind > draw {
		t.Fatalf("expected color buffer to be bound before drawing: %v", dev)
	}

	if have := dev.Bindings[gputest.Binding{Target: gpu.ShaderStorageBuffer, Index: 2}]; have != colors.Handle() {
		t.Fatalf("binding mismatch; have %d, want %d", have, colors.Handle())
	}

	if dev.Program != 0 || dev.VertexArray != 0 {
		t.Fatalf("expected state to be reset after drawing")
	}
}

func TestShutdownTwice(t *testing.T) {
	dev := gputest.New()
	colors := ssbo.New(dev)
	tri := NewTriangle(dev, colors, 0)

	if err := tri.Init(shaders, "tri.vert", "tri.frag"); err != nil {
		t.Fatal(err)
	}

	if err := colors.Create([]byte{1}); err != nil {
		t.Fatal(err)
	}

	tri.Shutdown()
	tri.Shutdown()

	if !colors.Live() {
		t.Fatalf("shutdown destroyed the color buffer")
	}

	if n := dev.Live(); n != 1 {
		t.Fatalf("unexpected live object count; have %d, want 1", n)
	}

	tri.Render()
}
