// Package native implements the gpucore GPU boundary on gogpu/wgpu,
// the Pure Go WebGPU implementation (Vulkan, Metal and DX12 backends).
//
// Two pieces live here:
//
//   - [HALAdapter] implements gpucore.GPUAdapter over a wgpu/hal device
//     and queue, mapping opaque gpucore IDs to HAL resources. It covers
//     exactly the surface glyph meshes need: vertex, index and uniform
//     buffers plus WGSL shader modules.
//
//   - [GlyphRenderer] owns the stencil-then-cover pipeline pair and the
//     MSAA color / depth-stencil / resolve textures, and records the
//     two-pass draw for uploaded glyph meshes: fan triangles accumulate
//     winding numbers in the stencil buffer (increment-wrap front,
//     decrement-wrap back), then the bounding quad shades pixels whose
//     stencil is non-zero and resets them for the next glyph.
//
// The host application owns device creation and frame scheduling; this
// package only records into render passes it is handed.
package native
