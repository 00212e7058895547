package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurikit/qmedia/errs"
)

func TestQOIHeaderRoundTrip(t *testing.T) {
	h := QOIHeader{Width: 640, Height: 480, Channels: 4, Colorspace: 0}
	b := h.Bytes()

	require.Len(t, b, QOIHeaderSize)
	require.Equal(t, []byte("qoif"), b[:4])

	parsed, err := ParseQOIHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
	require.NoError(t, parsed.Validate())
	require.Equal(t, uint64(640*480), parsed.Pixels())
}

func TestParseQOIHeaderErrors(t *testing.T) {
	_, err := ParseQOIHeader([]byte("qoif"))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	b := QOIHeader{Width: 1, Height: 1, Channels: 4}.Bytes()
	b[0] = 'x'
	_, err = ParseQOIHeader(b)
	require.ErrorIs(t, err, errs.ErrNotQOI)
}

func TestQOIHeaderValidate(t *testing.T) {
	tests := []struct {
		name     string
		header   QOIHeader
		expected error
	}{
		{"rgba srgb", QOIHeader{Width: 1, Height: 1, Channels: 4, Colorspace: 0}, nil},
		{"rgb linear", QOIHeader{Width: 16384, Height: 16384, Channels: 3, Colorspace: 1}, nil},
		{"zero width", QOIHeader{Width: 0, Height: 1, Channels: 4}, errs.ErrInvalidHeader},
		{"zero height", QOIHeader{Width: 1, Height: 0, Channels: 4}, errs.ErrInvalidHeader},
		{"too tall", QOIHeader{Width: 1, Height: 17000, Channels: 4}, errs.ErrInvalidHeader},
		{"too wide", QOIHeader{Width: 16385, Height: 1, Channels: 4}, errs.ErrInvalidHeader},
		{"two channels", QOIHeader{Width: 1, Height: 1, Channels: 2}, errs.ErrInvalidColorspace},
		{"five channels", QOIHeader{Width: 1, Height: 1, Channels: 5}, errs.ErrInvalidColorspace},
		{"zero width beats bad channels", QOIHeader{Width: 0, Height: 1, Channels: 5}, errs.ErrInvalidHeader},
		{"colorspace 2", QOIHeader{Width: 1, Height: 1, Channels: 4, Colorspace: 2}, errs.ErrInvalidColorspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Validate()
			if tt.expected == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.expected)
		})
	}
}
