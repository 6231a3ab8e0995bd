// Package palette holds the per-vertex triangle colors edited by the UI.
package palette

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Various palette properties.
const (
	Count      = 3                      // Count defines the number of colors; one per triangle vertex.
	Components = 4                      // Components per color: RGBA.
	ByteSize   = Count * Components * 4 // ByteSize is the size of the encoded palette in bytes.
)

// Palette holds one RGBA color per triangle vertex. Index i belongs to vertex i.
type Palette [Count]mgl32.Vec4

// Edit defines a single color change reported by the UI.
type Edit struct {
	Index int
	Color mgl32.Vec4
}

// Default returns red, green and blue for vertices 0, 1 and 2.
func Default() Palette {
	return Palette{
		{1, 0, 0, 1},
		{0, 1, 0, 1},
		{0, 0, 1, 1},
	}
}

// Apply overwrites colors with the given edits and returns true if
// any of them was applied. Edits with an index out of range are ignored.
func (p *Palette) Apply(edits []Edit) bool {
	var dirty bool
	for _, e := range edits {
		if e.Index < 0 || e.Index >= Count {
			continue
		}
		p[e.Index] = e.Color
		dirty = true
	}
	return dirty
}

// Bytes returns the palette as consecutive little-endian float32 values,
// in the std430 layout of a vec4 array.
func (p *Palette) Bytes() []byte {
	buf := make([]byte, ByteSize)
	for i, c := range p {
		for j, v := range c {
			binary.LittleEndian.PutUint32(buf[(i*Components+j)*4:], math.Float32bits(v))
		}
	}
	return buf
}
