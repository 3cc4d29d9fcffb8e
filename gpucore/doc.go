// Package gpucore defines the narrow contract between the fontmesh
// tessellator and a GPU backend.
//
// The tessellator produces plain data: interleaved float32 vertex
// positions in font units, uint32 index arrays, and a 32-byte per-draw
// parameter record ([DrawParams]). This package fixes their byte-level
// encodings (little-endian, tightly packed, as GPUs consume them) and
// the [GPUAdapter] interface a backend implements to receive them.
//
// GPU resources are addressed through opaque IDs ([BufferID],
// [ShaderModuleID]); each adapter maintains the mapping between IDs and
// its backend's native handles. The core never calls into an adapter
// itself — data flows outward only, driven by the consumer:
//
//	mesh := fontmesh.StencilCover(outline, opts)
//	vb, _ := adapter.CreateBuffer(len(gpucore.PackVertices(mesh.Vertices)), gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst)
//	adapter.WriteBuffer(vb, 0, gpucore.PackVertices(mesh.Vertices))
//
// The stencil-then-cover fill shaders live here too, as WGSL source, so
// every backend renders glyphs the same way: a stencil pass accumulating
// winding via increment-wrap/decrement-wrap, then a cover pass gated on
// stencil != 0. [CompileShaderToSPIRV] translates the sources for
// backends that consume SPIR-V instead of WGSL.
package gpucore
