package ingest

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/qoi"
)

// bitmap builds a BMP file from rows given top to bottom, in BGR(A) byte order.
func bitmap(width, height int32, bitCount uint16, rows [][]byte) []byte {
	stride := (int(width)*int(bitCount/8) + 3) &^ 3

	b := []byte("BM")
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, bmpHeaderSize)
	b = binary.LittleEndian.AppendUint32(b, bmpInfoHeaderSize)
	b = binary.LittleEndian.AppendUint32(b, uint32(width))
	b = binary.LittleEndian.AppendUint32(b, uint32(height))
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, bitCount)
	b = append(b, make([]byte, 24)...)

	ordered := rows
	if height > 0 {
		ordered = make([][]byte, len(rows))
		for i, r := range rows {
			ordered[len(rows)-1-i] = r
		}
	}
	for _, r := range ordered {
		row := make([]byte, stride)
		copy(row, r)
		b = append(b, row...)
	}
	binary.LittleEndian.PutUint32(b[2:], uint32(len(b)))

	return b
}

func TestReadBMP24(t *testing.T) {
	require := require.New(t)

	// 3x2: a stride of 9 bytes pads to 12
	data := bitmap(3, 2, 24, [][]byte{
		{0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0x00},
		{0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, 0x80, 0x90},
	})

	img, err := ReadBMP(data)
	require.NoError(err)
	require.Equal(3, img.Width)
	require.Equal(2, img.Height)
	require.Equal(format.ChannelsRGB, img.Channels)
	require.Equal([]uint32{
		0xFF0000FF, 0x00FF00FF, 0x0000FFFF,
		0x302010FF, 0x605040FF, 0x908070FF,
	}, img.Pix)
}

func TestReadBMP32(t *testing.T) {
	require := require.New(t)

	data := bitmap(2, 1, 32, [][]byte{
		{0x01, 0x02, 0x03, 0x80, 0x04, 0x05, 0x06, 0x00},
	})

	img, err := ReadBMP(data)
	require.NoError(err)
	require.Equal(format.ChannelsRGBA, img.Channels)
	require.Equal([]uint32{0x03020180, 0x06050400}, img.Pix)
}

func TestReadBMPTopDown(t *testing.T) {
	require := require.New(t)

	rows := [][]byte{
		{0x00, 0x00, 0x01},
		{0x00, 0x00, 0x02},
	}
	bottomUp, err := ReadBMP(bitmap(1, 2, 24, rows))
	require.NoError(err)
	topDown, err := ReadBMP(bitmap(1, -2, 24, rows))
	require.NoError(err)

	require.Equal(bottomUp, topDown)
	require.Equal(2, topDown.Height)
	require.Equal(uint8(0x01), encoding.Pixel(topDown.Pix[0]).R())
}

func TestReadBMPErrors(t *testing.T) {
	valid := bitmap(2, 2, 24, [][]byte{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12}})

	mutate := func(fn func([]byte)) []byte {
		b := append([]byte(nil), valid...)
		fn(b)

		return b
	}

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{name: "empty", data: nil, err: errs.ErrUnexpectedEOF},
		{name: "header_only", data: valid[:bmpHeaderSize-1], err: errs.ErrUnexpectedEOF},
		{name: "magic", data: mutate(func(b []byte) { b[1] = 'A' }), err: errs.ErrNotBitmap},
		{name: "reserved", data: mutate(func(b []byte) { b[7] = 1 }), err: errs.ErrNotBitmap},
		{name: "bit_count_8", data: bitmap(2, 2, 8, nil), err: errs.ErrUnsupportedBitCount},
		{name: "bit_count_16", data: bitmap(2, 2, 16, nil), err: errs.ErrUnsupportedBitCount},
		{name: "zero_width", data: bitmap(0, 2, 24, nil), err: errs.ErrInvalidDimensions},
		{name: "zero_height", data: bitmap(2, 0, 24, nil), err: errs.ErrInvalidDimensions},
		{name: "negative_width", data: mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[18:], 0xFFFFFFFE) }), err: errs.ErrInvalidDimensions},
		{name: "truncated_pixels", data: valid[:len(valid)-1], err: errs.ErrUnexpectedEOF},
		{name: "huge_dimensions", data: mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[18:], 0x7FFFFFFF) }), err: errs.ErrUnexpectedEOF},
		{name: "offset_past_end", data: mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[10:], 0xFFFFFFF0) }), err: errs.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ReadBMP(tt.data)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, img.Pix)
		})
	}
}

func TestWriteBMPRoundTrip(t *testing.T) {
	require := require.New(t)

	in := qoi.Image{
		Pix: []uint32{
			0x11223344, 0x55667788, 0x99AABBCC,
			0xDDEEFF00, 0x01020304, 0xFFFFFFFF,
		},
		Width:      3,
		Height:     2,
		Channels:   format.ChannelsRGBA,
		Colorspace: format.ColorspaceSRGB,
	}

	data, err := WriteBMP(in)
	require.NoError(err)
	require.Len(data, bmpHeaderSize+4*len(in.Pix))

	out, err := ReadBMP(data)
	require.NoError(err)
	require.Equal(in, out)
}

func TestWriteBMPErrors(t *testing.T) {
	_, err := WriteBMP(qoi.Image{Pix: []uint32{1}, Width: 2, Height: 1})
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)

	_, err = WriteBMP(qoi.Image{})
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)
}
