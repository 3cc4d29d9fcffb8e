package native

import (
	"fmt"

	"github.com/gogpu/fontmesh"
	"github.com/gogpu/fontmesh/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// sampleCount is the MSAA sample count for glyph rendering. Glyph edges
// get their antialiasing entirely from multisampling, so 1x would leave
// visible stairstepping at text sizes.
const sampleCount = 4

// vertexStride is the byte stride per vertex: 2 x float32 (x, y) = 8 bytes.
const vertexStride = 8

// GlyphRenderer draws tessellated glyph meshes with the two-pass
// stencil-then-cover fill. It owns the pipeline pair and the render
// target set (MSAA color, depth/stencil, single-sample resolve), resized
// on demand.
//
// Per glyph, the winding pass rasterizes the contour fans with color
// writes disabled; what it leaves behind is each pixel's winding number
// in the stencil buffer. The cover pass then draws the glyph's bounding
// quad, shading only pixels whose stencil is non-zero and zeroing them
// as it goes, so the stencil buffer is clean again for the next glyph.
// Both passes run back to back inside one render pass via pipeline
// switches.
type GlyphRenderer struct {
	device hal.Device
	queue  hal.Queue

	// Render targets. The MSAA color texture is the working attachment,
	// resolved into resolveTex (single-sample, CopySrc for readback) at
	// pass end. stencilTex holds the winding numbers; its depth half is
	// dead weight required by the packed format.
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	stencilTex  hal.Texture
	stencilView hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	width, height uint32

	windingShader hal.ShaderModule
	coverShader   hal.ShaderModule

	// Both passes bind exactly one DrawParams uniform, so they share a
	// single bind group layout; the pipeline layouts are per-pass only
	// to keep labels distinct in captures.
	uniformLayout     hal.BindGroupLayout
	windingPipeLayout hal.PipelineLayout
	coverPipeLayout   hal.PipelineLayout

	windingPipeline hal.RenderPipeline
	coverPipeline   hal.RenderPipeline
}

// NewGlyphRenderer creates a GlyphRenderer and compiles its pipelines.
// Textures are not allocated until EnsureTextures is called with the
// desired dimensions.
func NewGlyphRenderer(device hal.Device, queue hal.Queue) (*GlyphRenderer, error) {
	gr := &GlyphRenderer{
		device: device,
		queue:  queue,
	}
	if err := gr.createPipelines(); err != nil {
		gr.Destroy()
		return nil, err
	}
	return gr, nil
}

// glyphVertexLayout describes the one vertex stream every glyph pipeline
// consumes: the interleaved float32 (x, y) font-unit positions that
// gpucore.PackVertices emits, fed to location(0).
func glyphVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{
					Format:         gputypes.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: 0,
				},
			},
		},
	}
}

// stencilFace builds a face state that leaves the stencil alone except
// when the fragment passes compare, in which case op applies.
func stencilFace(compare gputypes.CompareFunction, op hal.StencilOperation) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      op,
	}
}

// glyphPipeline is the per-pass half of a pipeline description; the
// vertex layout, MSAA state, triangle topology and attachment formats
// are fixed for all glyph drawing and filled in by newGlyphPipeline.
type glyphPipeline struct {
	label  string
	layout hal.PipelineLayout
	shader hal.ShaderModule

	// Color side: the winding pass masks all channels off, the cover
	// pass blends premultiplied color.
	writeMask gputypes.ColorWriteMask
	blend     *gputypes.BlendState

	// Stencil side. front and back differ only in the winding pass,
	// where triangle orientation carries the sign of the contribution.
	front, back  hal.StencilFaceState
	stencilWrite uint32
}

// newGlyphPipeline assembles a render pipeline from the shared glyph
// state plus the per-pass differences. Culling stays off: counter
// contours deliberately flip triangle orientation, and the cover quad's
// orientation is irrelevant.
func (gr *GlyphRenderer) newGlyphPipeline(p glyphPipeline) (hal.RenderPipeline, error) {
	pipeline, err := gr.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    glyphVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gpucore.ColorTargetFormat(),
					Blend:     p.blend,
					WriteMask: p.writeMask,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            gpucore.DepthStencilFormat(),
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront:      p.front,
			StencilBack:       p.back,
			StencilReadMask:   0xFF,
			StencilWriteMask:  p.stencilWrite,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p.label, err)
	}
	return pipeline, nil
}

// createPipelines compiles the shared gpucore shaders, sets up the
// uniform and pipeline layouts, and builds the winding and cover
// pipelines.
func (gr *GlyphRenderer) createPipelines() error {
	var err error
	gr.windingShader, err = gr.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_winding_shader",
		Source: hal.ShaderSource{WGSL: gpucore.StencilFillShaderWGSL()},
	})
	if err != nil {
		return fmt.Errorf("compile winding shader: %w", err)
	}
	gr.coverShader, err = gr.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_cover_shader",
		Source: hal.ShaderSource{WGSL: gpucore.CoverShaderWGSL()},
	})
	if err != nil {
		return fmt.Errorf("compile cover shader: %w", err)
	}

	gr.uniformLayout, err = gr.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	gr.windingPipeLayout, err = gr.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_winding_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{gr.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create winding pipeline layout: %w", err)
	}
	gr.coverPipeLayout, err = gr.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_cover_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{gr.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create cover pipeline layout: %w", err)
	}

	// Winding pass. The fans overlap themselves arbitrarily, so nothing
	// may reach the color target; the fragment shader exists only
	// because backends want one. Orientation carries the sign: a front
	// face adds one winding, a back face removes one. Wrap (rather than
	// clamp) keeps deeply nested or self-overlapping contours counted
	// correctly modulo 256, which the spec's non-zero test tolerates.
	gr.windingPipeline, err = gr.newGlyphPipeline(glyphPipeline{
		label:        "glyph_winding_pipeline",
		layout:       gr.windingPipeLayout,
		shader:       gr.windingShader,
		writeMask:    gputypes.ColorWriteMaskNone,
		front:        stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationIncrementWrap),
		back:         stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationDecrementWrap),
		stencilWrite: 0xFF,
	})
	if err != nil {
		return err
	}

	// Cover pass. The bounding quad is the only geometry; the stencil
	// test NotEqual(0) turns it into the glyph's exact filled shape.
	// Passing fragments zero their stencil value on the way out, which
	// is what lets many glyphs share one render pass without explicit
	// clears between them.
	premul := gputypes.BlendStatePremultiplied()
	gr.coverPipeline, err = gr.newGlyphPipeline(glyphPipeline{
		label:        "glyph_cover_pipeline",
		layout:       gr.coverPipeLayout,
		shader:       gr.coverShader,
		writeMask:    gputypes.ColorWriteMaskAll,
		blend:        &premul,
		front:        stencilFace(gputypes.CompareFunctionNotEqual, hal.StencilOperationZero),
		back:         stencilFace(gputypes.CompareFunctionNotEqual, hal.StencilOperationZero),
		stencilWrite: 0xFF,
	})
	return err
}

// EnsureTextures creates or recreates the render target set if the
// requested dimensions differ from the current size. If dimensions
// match, this is a no-op. On resize, existing textures are destroyed
// before creating new ones.
func (gr *GlyphRenderer) EnsureTextures(width, height uint32) error {
	if gr.width == width && gr.height == height && gr.msaaTex != nil {
		return nil
	}

	gr.destroyTextures()

	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	msaaTex, err := gr.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_msaa_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gpucore.ColorTargetFormat(),
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create MSAA color texture: %w", err)
	}
	gr.msaaTex = msaaTex

	msaaView, err := gr.device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
		Label: "glyph_msaa_color_view",
	})
	if err != nil {
		gr.destroyTextures()
		return fmt.Errorf("create MSAA color texture view: %w", err)
	}
	gr.msaaView = msaaView

	stencilTex, err := gr.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gpucore.DepthStencilFormat(),
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		gr.destroyTextures()
		return fmt.Errorf("create depth/stencil texture: %w", err)
	}
	gr.stencilTex = stencilTex

	stencilView, err := gr.device.CreateTextureView(stencilTex, &hal.TextureViewDescriptor{
		Label: "glyph_depth_stencil_view",
	})
	if err != nil {
		gr.destroyTextures()
		return fmt.Errorf("create depth/stencil texture view: %w", err)
	}
	gr.stencilView = stencilView

	resolveTex, err := gr.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gpucore.ColorTargetFormat(),
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		gr.destroyTextures()
		return fmt.Errorf("create resolve texture: %w", err)
	}
	gr.resolveTex = resolveTex

	resolveView, err := gr.device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
		Label: "glyph_resolve_view",
	})
	if err != nil {
		gr.destroyTextures()
		return fmt.Errorf("create resolve texture view: %w", err)
	}
	gr.resolveView = resolveView

	gr.width = width
	gr.height = height
	return nil
}

// GlyphResources holds the per-glyph GPU buffers and bind group for one
// uploaded stencil-cover mesh.
type GlyphResources struct {
	windingVerts hal.Buffer
	fanIndices   hal.Buffer
	coverVerts   hal.Buffer
	coverIndices hal.Buffer
	uniform      hal.Buffer
	bindGroup    hal.BindGroup

	fanIndexCount   uint32
	coverIndexCount uint32
}

// UploadGlyph creates the GPU buffers for a tessellated glyph mesh and
// its draw parameters. Returns nil for an empty mesh (blank glyphs).
func (gr *GlyphRenderer) UploadGlyph(mesh fontmesh.StencilCoverMesh, params gpucore.DrawParams) (*GlyphResources, error) {
	if len(mesh.FanIndices) == 0 {
		return nil, nil
	}

	res := &GlyphResources{
		fanIndexCount:   uint32(len(mesh.FanIndices)),
		coverIndexCount: uint32(len(mesh.CoverIndices)),
	}
	var err error
	if res.windingVerts, err = gr.uploadBuffer("glyph_winding_verts",
		gpucore.PackVertices(mesh.Vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		gr.DestroyGlyph(res)
		return nil, err
	}
	if res.fanIndices, err = gr.uploadBuffer("glyph_fan_indices",
		gpucore.PackIndices(mesh.FanIndices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		gr.DestroyGlyph(res)
		return nil, err
	}
	if res.coverVerts, err = gr.uploadBuffer("glyph_cover_verts",
		gpucore.PackVertices(mesh.CoverVertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		gr.DestroyGlyph(res)
		return nil, err
	}
	if res.coverIndices, err = gr.uploadBuffer("glyph_cover_indices",
		gpucore.PackIndices(mesh.CoverIndices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		gr.DestroyGlyph(res)
		return nil, err
	}
	if res.uniform, err = gr.uploadBuffer("glyph_draw_params",
		params.Pack(), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst); err != nil {
		gr.DestroyGlyph(res)
		return nil, err
	}

	bindGroup, err := gr.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_bind",
		Layout: gr.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.uniform.NativeHandle(), Offset: 0, Size: gpucore.DrawParamsSize,
			}},
		},
	})
	if err != nil {
		gr.DestroyGlyph(res)
		return nil, fmt.Errorf("create glyph bind group: %w", err)
	}
	res.bindGroup = bindGroup

	return res, nil
}

// uploadBuffer creates a buffer and writes data into it.
func (gr *GlyphRenderer) uploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := gr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	gr.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// RecordGlyph records the winding and cover draws for one glyph into an
// existing render pass. The render pass must use the renderer's textures
// (see RenderPassDescriptor). A nil resources is a no-op.
func (gr *GlyphRenderer) RecordGlyph(rp hal.RenderPassEncoder, res *GlyphResources) {
	if res == nil || res.fanIndexCount == 0 {
		return
	}

	rp.SetPipeline(gr.windingPipeline)
	rp.SetBindGroup(0, res.bindGroup, nil)
	rp.SetVertexBuffer(0, res.windingVerts, 0)
	rp.SetIndexBuffer(res.fanIndices, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(res.fanIndexCount, 1, 0, 0, 0)

	rp.SetPipeline(gr.coverPipeline)
	rp.SetBindGroup(0, res.bindGroup, nil)
	rp.SetVertexBuffer(0, res.coverVerts, 0)
	rp.SetIndexBuffer(res.coverIndices, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(res.coverIndexCount, 1, 0, 0, 0)
}

// RenderPassDescriptor returns a render pass descriptor wired to the
// renderer's textures: MSAA color resolving into the single-sample
// target, stencil cleared to zero up front and discarded afterwards
// (winding counts never outlive the pass). EnsureTextures must be
// called first; returns nil if textures have not been allocated.
func (gr *GlyphRenderer) RenderPassDescriptor() *hal.RenderPassDescriptor {
	if gr.msaaView == nil || gr.stencilView == nil || gr.resolveView == nil {
		return nil
	}
	return &hal.RenderPassDescriptor{
		Label: "glyph_fill_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:          gr.msaaView,
				ResolveTarget: gr.resolveView,
				LoadOp:        gputypes.LoadOpClear,
				StoreOp:       gputypes.StoreOpStore,
				ClearValue:    gputypes.Color{R: 1, G: 1, B: 1, A: 1},
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              gr.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
}

// ResolveTexture returns the single-sample resolve target holding the
// final rendered output, with CopySrc usage for readback. Returns nil if
// textures have not been allocated.
func (gr *GlyphRenderer) ResolveTexture() hal.Texture {
	return gr.resolveTex
}

// DestroyGlyph releases the GPU resources of one uploaded glyph.
// Safe to call with nil or partially populated resources.
func (gr *GlyphRenderer) DestroyGlyph(res *GlyphResources) {
	if res == nil {
		return
	}
	if res.bindGroup != nil {
		gr.device.DestroyBindGroup(res.bindGroup)
	}
	for _, buf := range []hal.Buffer{res.windingVerts, res.fanIndices, res.coverVerts, res.coverIndices, res.uniform} {
		if buf != nil {
			gr.device.DestroyBuffer(buf)
		}
	}
	*res = GlyphResources{}
}

// Destroy releases all GPU resources held by the renderer: pipelines,
// shaders, layouts, textures, and views. Safe to call multiple times.
func (gr *GlyphRenderer) Destroy() {
	gr.destroyPipelines()
	gr.destroyTextures()
}

// destroyPipelines releases pipeline resources in reverse creation order.
func (gr *GlyphRenderer) destroyPipelines() {
	if gr.device == nil {
		return
	}
	if gr.coverPipeline != nil {
		gr.device.DestroyRenderPipeline(gr.coverPipeline)
		gr.coverPipeline = nil
	}
	if gr.windingPipeline != nil {
		gr.device.DestroyRenderPipeline(gr.windingPipeline)
		gr.windingPipeline = nil
	}
	if gr.coverPipeLayout != nil {
		gr.device.DestroyPipelineLayout(gr.coverPipeLayout)
		gr.coverPipeLayout = nil
	}
	if gr.windingPipeLayout != nil {
		gr.device.DestroyPipelineLayout(gr.windingPipeLayout)
		gr.windingPipeLayout = nil
	}
	if gr.uniformLayout != nil {
		gr.device.DestroyBindGroupLayout(gr.uniformLayout)
		gr.uniformLayout = nil
	}
	if gr.coverShader != nil {
		gr.device.DestroyShaderModule(gr.coverShader)
		gr.coverShader = nil
	}
	if gr.windingShader != nil {
		gr.device.DestroyShaderModule(gr.windingShader)
		gr.windingShader = nil
	}
}

// destroyTextures releases all texture views and textures, resetting
// dimensions to zero. Each resource is nil-checked to support partial
// cleanup.
func (gr *GlyphRenderer) destroyTextures() {
	if gr.resolveView != nil {
		gr.device.DestroyTextureView(gr.resolveView)
		gr.resolveView = nil
	}
	if gr.resolveTex != nil {
		gr.device.DestroyTexture(gr.resolveTex)
		gr.resolveTex = nil
	}
	if gr.stencilView != nil {
		gr.device.DestroyTextureView(gr.stencilView)
		gr.stencilView = nil
	}
	if gr.stencilTex != nil {
		gr.device.DestroyTexture(gr.stencilTex)
		gr.stencilTex = nil
	}
	if gr.msaaView != nil {
		gr.device.DestroyTextureView(gr.msaaView)
		gr.msaaView = nil
	}
	if gr.msaaTex != nil {
		gr.device.DestroyTexture(gr.msaaTex)
		gr.msaaTex = nil
	}
	gr.width = 0
	gr.height = 0
}
