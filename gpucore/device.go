// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: fontmesh RECEIVES the device from the host, it does NOT
// create one. The host (e.g. a gogpu.App) implements DeviceHandle and
// passes it to the backend, so the glyph renderer shares the
// application's device, queue and resource lifetime.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// fontmesh-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// ColorTargetFormat is the texture format glyph color attachments use.
// BGRA8 is universally renderable across the wgpu backends.
func ColorTargetFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// DepthStencilFormat is the texture format of the stencil attachment the
// winding numbers accumulate in. The depth component is unused but comes
// with the only universally supported stencil format.
func DepthStencilFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatDepth24PlusStencil8
}
