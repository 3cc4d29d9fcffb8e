package gpucore

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources for stencil-then-cover glyph rendering.
// Both shaders share the DrawParams uniform layout and the float32x2
// vertex layout at location(0).

//go:embed shaders/stencil_fill.wgsl
var stencilFillShaderWGSL string

//go:embed shaders/cover.wgsl
var coverShaderWGSL string

// StencilFillShaderWGSL returns the WGSL source of the stencil pass:
// fan triangles rasterized with color writes masked off, accumulating
// winding numbers in the stencil buffer.
func StencilFillShaderWGSL() string { return stencilFillShaderWGSL }

// CoverShaderWGSL returns the WGSL source of the cover pass: the glyph
// bounding quad, drawn where the stencil is non-zero.
func CoverShaderWGSL() string { return coverShaderWGSL }

// CompileShaderToSPIRV compiles WGSL source to a SPIR-V uint32 slice for
// backends that consume SPIR-V instead of WGSL.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("gpucore: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
