package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelChannels(t *testing.T) {
	p := NewPixel(0x12, 0x34, 0x56, 0x78)
	require.Equal(t, Pixel(0x12345678), p)
	require.Equal(t, uint8(0x12), p.R())
	require.Equal(t, uint8(0x34), p.G())
	require.Equal(t, uint8(0x56), p.B())
	require.Equal(t, uint8(0x78), p.A())
	require.Equal(t, Pixel(0x123456FF), p.WithAlpha(0xFF))
}

func TestPixelHash(t *testing.T) {
	tests := []struct {
		p        Pixel
		expected int
	}{
		{OpaqueBlack, (255 * 11) % 64},
		{NewPixel(255, 0, 0, 255), (255*3 + 255*11) % 64},
		{NewPixel(0, 0, 0, 0), 0},
		{NewPixel(1, 2, 3, 4), (3 + 10 + 21 + 44) % 64},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.p.Hash(), "pixel %08x", uint32(tt.p))
	}
}

func TestOpTags(t *testing.T) {
	require.Equal(t, OpRun, OpRGB&TagMask)
	require.Equal(t, OpRun, OpRGBA&TagMask)
	require.Equal(t, 0x3D, MaxRun-1) // longest run chunk is 0xFD
}
