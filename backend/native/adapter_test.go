package native

import (
	"testing"

	"github.com/gogpu/fontmesh/gpucore"
	"github.com/gogpu/gputypes"
)

func TestConvertBufferUsage(t *testing.T) {
	tests := []struct {
		name string
		in   gpucore.BufferUsage
		want gputypes.BufferUsage
	}{
		{"vertex+copydst",
			gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst,
			gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst},
		{"index",
			gpucore.BufferUsageIndex,
			gputypes.BufferUsageIndex},
		{"uniform",
			gpucore.BufferUsageUniform,
			gputypes.BufferUsageUniform},
		{"map read+write",
			gpucore.BufferUsageMapRead | gpucore.BufferUsageMapWrite,
			gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite},
		{"copy src",
			gpucore.BufferUsageCopySrc,
			gputypes.BufferUsageCopySrc},
		{"none", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertBufferUsage(tt.in); got != tt.want {
				t.Errorf("convertBufferUsage(%#x) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}
