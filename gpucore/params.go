package gpucore

import (
	"encoding/binary"
	"math"
)

// DrawParamsSize is the byte size of a packed DrawParams record.
const DrawParamsSize = 32

// DrawParams is the per-draw parameter record handed to the GPU as a
// uniform buffer. Vertex coordinates stay in raw font units; the vertex
// stage applies scale = FontSizePx / UnitsPerEm and the Y-flip
// (y_px = OriginY - y_fu * scale), so the same mesh redraws at any size
// or position without retessellation.
type DrawParams struct {
	// UnitsPerEm is the font's design grid resolution.
	UnitsPerEm float32

	// FontSizePx is the target em size in pixels.
	FontSizePx float32

	// OriginX, OriginY position the glyph baseline origin in pixels,
	// Y growing downward.
	OriginX float32
	OriginY float32

	// CanvasW, CanvasH are the render target dimensions in pixels.
	CanvasW float32
	CanvasH float32

	// Time is an animation clock in seconds, free for shader effects.
	Time float32

	// Reserved pads the record to 32 bytes.
	Reserved float32
}

// Pack encodes the record as 32 tightly packed little-endian bytes, the
// layout the WGSL uniform struct expects.
func (p DrawParams) Pack() []byte {
	out := make([]byte, 0, DrawParamsSize)
	for _, v := range [...]float32{
		p.UnitsPerEm, p.FontSizePx,
		p.OriginX, p.OriginY,
		p.CanvasW, p.CanvasH,
		p.Time, p.Reserved,
	} {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// PackVertices encodes interleaved float32 vertex positions as
// little-endian bytes for upload.
func PackVertices(v []float32) []byte {
	out := make([]byte, 0, len(v)*4)
	for _, f := range v {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
	}
	return out
}

// PackIndices encodes uint32 indices as little-endian bytes for upload.
func PackIndices(idx []uint32) []byte {
	out := make([]byte, 0, len(idx)*4)
	for _, i := range idx {
		out = binary.LittleEndian.AppendUint32(out, i)
	}
	return out
}
