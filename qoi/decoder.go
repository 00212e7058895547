package qoi

import (
	"fmt"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/section"
)

// Decode decodes a complete QOI file.
//
// The footer must be present but its contents are not checked.
//
// Parameters:
//   - data: the whole file
//   - opts: decoder options such as WithMaxPixels
//
// Returns:
//   - Image: decoded pixels with the header's channel and colorspace tags
//   - error: errs.ErrUnexpectedEOF for short or truncated input, errs.ErrNotQOI,
//     errs.ErrInvalidHeader, errs.ErrInvalidColorspace, errs.ErrMemory
func Decode(data []byte, opts ...DecoderOption) (Image, error) {
	cfg := &decoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return Image{}, err
	}

	if len(data) < section.QOIMinSize {
		return Image{}, errs.ErrUnexpectedEOF
	}

	header, err := section.ParseQOIHeader(data)
	if err != nil {
		return Image{}, err
	}
	if err := header.Validate(); err != nil {
		return Image{}, fmt.Errorf("%dx%d, %d channels, colorspace %d: %w",
			header.Width, header.Height, header.Channels, header.Colorspace, err)
	}

	pixels := header.Pixels()
	if cfg.maxPixels > 0 && pixels > cfg.maxPixels {
		return Image{}, fmt.Errorf("%d pixels exceed limit %d: %w", pixels, cfg.maxPixels, errs.ErrMemory)
	}
	// Every op byte yields at most MaxRun pixels.
	if pixels > uint64(len(data)-section.QOIMinSize)*encoding.MaxRun {
		return Image{}, errs.ErrUnexpectedEOF
	}

	pix := make([]uint32, pixels)
	p, err := decodePixels(data, section.QOIHeaderSize, pix)
	if err != nil {
		return Image{}, err
	}
	if len(data)-p < section.QOIFooterSize {
		return Image{}, errs.ErrUnexpectedEOF
	}

	return Image{
		Pix:        pix,
		Width:      int(header.Width),
		Height:     int(header.Height),
		Channels:   header.Channels,
		Colorspace: header.Colorspace,
	}, nil
}

// decodePixels fills pix from the op stream starting at data[p] and returns the offset
// after the last op.
func decodePixels(data []byte, p int, pix []uint32) (int, error) {
	var cache [encoding.CacheSize]encoding.Pixel
	px := encoding.OpaqueBlack
	run := 0

	for i := range pix {
		if run > 0 {
			run--
			pix[i] = uint32(px)

			continue
		}

		if p >= len(data) {
			return p, errs.ErrUnexpectedEOF
		}
		op := data[p]
		p++

		switch {
		case op == encoding.OpRGB:
			if len(data)-p < 3 {
				return p, errs.ErrUnexpectedEOF
			}
			px = encoding.NewPixel(data[p], data[p+1], data[p+2], px.A())
			p += 3
		case op == encoding.OpRGBA:
			if len(data)-p < 4 {
				return p, errs.ErrUnexpectedEOF
			}
			px = encoding.NewPixel(data[p], data[p+1], data[p+2], data[p+3])
			p += 4
		case op&encoding.TagMask == encoding.OpIndex:
			px = cache[op&0x3F]
		case op&encoding.TagMask == encoding.OpDiff:
			px = encoding.NewPixel(
				px.R()+(op>>4)&0x03-2,
				px.G()+(op>>2)&0x03-2,
				px.B()+op&0x03-2,
				px.A(),
			)
		case op&encoding.TagMask == encoding.OpLuma:
			if p >= len(data) {
				return p, errs.ErrUnexpectedEOF
			}
			b2 := data[p]
			p++
			dg := op&0x3F - 32
			px = encoding.NewPixel(
				px.R()+dg-8+(b2>>4)&0x0F,
				px.G()+dg,
				px.B()+dg-8+b2&0x0F,
				px.A(),
			)
		default: // run
			run = int(op & 0x3F)
			pix[i] = uint32(px)

			continue
		}

		cache[px.Hash()] = px
		pix[i] = uint32(px)
	}

	return p, nil
}
