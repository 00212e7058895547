package ingest

import (
	"fmt"
	"math"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/qoi"
)

const (
	bmpMagic          = 'B' | 'M'<<8
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpHeaderSize     = bmpFileHeaderSize + bmpInfoHeaderSize
)

// ReadBMP parses an uncompressed 24 or 32 bits-per-pixel bitmap.
//
// Rows are stored bottom-up unless the height is negative, each padded to a multiple of four
// bytes. Pixels are BGR or BGRA; 24-bit images become opaque.
//
// Returns:
//   - qoi.Image: RGBA pixels tagged as 3 or 4 channel sRGB
//   - error: errs.ErrNotBitmap for a bad magic or non-zero reserved fields,
//     errs.ErrUnsupportedBitCount, errs.ErrInvalidDimensions, or errs.ErrUnexpectedEOF
func ReadBMP(data []byte) (qoi.Image, error) {
	if len(data) < bmpHeaderSize {
		return qoi.Image{}, errs.ErrUnexpectedEOF
	}

	engine := endian.Archive()
	if engine.Uint16(data[0:2]) != bmpMagic {
		return qoi.Image{}, errs.ErrNotBitmap
	}
	if engine.Uint16(data[6:8]) != 0 || engine.Uint16(data[8:10]) != 0 {
		return qoi.Image{}, fmt.Errorf("reserved header fields: %w", errs.ErrNotBitmap)
	}
	pixelOffset := uint64(engine.Uint32(data[10:14]))

	info := data[bmpFileHeaderSize:]
	width := int64(int32(engine.Uint32(info[4:8])))
	height := int64(int32(engine.Uint32(info[8:12])))
	bitCount := engine.Uint16(info[14:16])

	if bitCount != 24 && bitCount != 32 {
		return qoi.Image{}, fmt.Errorf("%d bpp: %w", bitCount, errs.ErrUnsupportedBitCount)
	}

	topDown := height < 0
	if topDown {
		height = -height
	}
	if width <= 0 || height == 0 {
		return qoi.Image{}, fmt.Errorf("%dx%d: %w", width, height, errs.ErrInvalidDimensions)
	}

	bpp := uint64(bitCount / 8)
	stride := (uint64(width)*bpp + 3) &^ 3
	if pixelOffset+stride*uint64(height) > uint64(len(data)) {
		return qoi.Image{}, errs.ErrUnexpectedEOF
	}

	w, h := int(width), int(height)
	pix := make([]uint32, w*h)
	for y := range h {
		row := y
		if !topDown {
			row = h - 1 - y
		}
		src := data[pixelOffset+uint64(row)*stride:]
		dst := pix[y*w : (y+1)*w]

		for x := range dst {
			o := uint64(x) * bpp
			a := uint8(0xFF)
			if bpp == 4 {
				a = src[o+3]
			}
			dst[x] = uint32(encoding.NewPixel(src[o+2], src[o+1], src[o], a))
		}
	}

	channels := format.ChannelsRGB
	if bpp == 4 {
		channels = format.ChannelsRGBA
	}

	return qoi.Image{
		Pix:        pix,
		Width:      w,
		Height:     h,
		Channels:   channels,
		Colorspace: format.ColorspaceSRGB,
	}, nil
}

// WriteBMP serializes img as a bottom-up 32 bits-per-pixel bitmap.
//
// Returns:
//   - []byte: the file
//   - error: errs.ErrInvalidDimensions if the dimensions do not fit the header or disagree
//     with len(img.Pix)
func WriteBMP(img qoi.Image) ([]byte, error) {
	if img.Width <= 0 || img.Height <= 0 || img.Width > math.MaxInt32 || img.Height > math.MaxInt32 ||
		uint64(len(img.Pix)) != uint64(img.Width)*uint64(img.Height) {
		return nil, fmt.Errorf("%dx%d: %w", img.Width, img.Height, errs.ErrInvalidDimensions)
	}

	imageSize := uint64(len(img.Pix)) * 4
	if imageSize > math.MaxUint32-bmpHeaderSize {
		return nil, fmt.Errorf("%dx%d: %w", img.Width, img.Height, errs.ErrInvalidDimensions)
	}

	engine := endian.Archive()
	b := make([]byte, 0, bmpHeaderSize+int(imageSize))

	b = engine.AppendUint16(b, bmpMagic)
	b = engine.AppendUint32(b, uint32(bmpHeaderSize+imageSize))
	b = engine.AppendUint32(b, 0) // reserved
	b = engine.AppendUint32(b, bmpHeaderSize)

	b = engine.AppendUint32(b, bmpInfoHeaderSize)
	b = engine.AppendUint32(b, uint32(img.Width))
	b = engine.AppendUint32(b, uint32(img.Height))
	b = engine.AppendUint16(b, 1)
	b = engine.AppendUint16(b, 32)
	b = engine.AppendUint32(b, 0)
	b = engine.AppendUint32(b, uint32(imageSize))
	b = engine.AppendUint32(b, 2835) // 72 dpi
	b = engine.AppendUint32(b, 2835)
	b = engine.AppendUint32(b, 0)
	b = engine.AppendUint32(b, 0)

	for y := img.Height - 1; y >= 0; y-- {
		for _, v := range img.Pix[y*img.Width : (y+1)*img.Width] {
			p := encoding.Pixel(v)
			b = append(b, p.B(), p.G(), p.R(), p.A())
		}
	}

	return b, nil
}
