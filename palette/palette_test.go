package palette

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultBytes(t *testing.T) {
	p := Default()

	// 1.0 = 0x3f800000
	want := []byte{
		0, 0, 0x80, 0x3f, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x80, 0x3f,
		0, 0, 0, 0, 0, 0, 0x80, 0x3f, 0, 0, 0, 0, 0, 0, 0x80, 0x3f,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x80, 0x3f, 0, 0, 0x80, 0x3f,
	}

	have := p.Bytes()
	if !bytes.Equal(have, want) {
		t.Fatalf("encoding mismatch:\nhave: %x\nwant: %x", have, want)
	}
}

func TestApply(t *testing.T) {
	p := Default()
	grey := mgl32.Vec4{0.5, 0.5, 0.5, 1}

	if !p.Apply([]Edit{{Index: 1, Color: grey}}) {
		t.Fatalf("expected palette to be dirty")
	}

	want := Default()
	want[1] = grey
	if p != want {
		t.Fatalf("palette mismatch; have %v, want %v", p, want)
	}
}

func TestApplyIgnoresOutOfRange(t *testing.T) {
	p := Default()

	if p.Apply([]Edit{{Index: -1}, {Index: Count}}) {
		t.Fatalf("expected out of range edits to be ignored")
	}

	if p.Apply(nil) {
		t.Fatalf("expected no edits to leave the palette clean")
	}

	if p != Default() {
		t.Fatalf("palette changed: %v", p)
	}
}
