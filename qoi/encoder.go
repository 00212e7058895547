package qoi

import (
	"fmt"
	"math"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/internal/pool"
	"github.com/yurikit/qmedia/section"
)

// Encode encodes img as a QOI file with a 4-channel sRGB header.
//
// Parameters:
//   - img: pixels and dimensions; Channels and Colorspace are ignored
//   - opts: encoder options such as WithDimensionCheck
//
// Returns:
//   - []byte: the encoded file, owned by the caller
//   - error: errs.ErrInvalidArguments if Pix is nil or does not hold Width*Height pixels,
//     errs.ErrInvalidHeader for dimensions the header cannot carry
func Encode(img Image, opts ...EncoderOption) ([]byte, error) {
	cfg := &encoderConfig{checkDimensions: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if err := validateForEncode(img, cfg); err != nil {
		return nil, err
	}

	bb := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(bb)

	// Typical images stay below two bytes per pixel; literals grow the buffer as needed.
	bb.Grow(section.QOIMinSize + 2*len(img.Pix))

	header := section.QOIHeader{
		Width:      uint32(img.Width),
		Height:     uint32(img.Height),
		Channels:   format.ChannelsRGBA,
		Colorspace: format.ColorspaceSRGB,
	}
	b := header.Append(bb.B)
	b = encodePixels(b, img.Pix)
	bb.B = append(b, section.QOIFooter[:]...)

	return bb.Clone(), nil
}

func validateForEncode(img Image, cfg *encoderConfig) error {
	if img.Pix == nil {
		return fmt.Errorf("nil pixels: %w", errs.ErrInvalidArguments)
	}
	if img.Width < 1 || img.Height < 1 || uint64(img.Width) > math.MaxUint32 || uint64(img.Height) > math.MaxUint32 {
		return fmt.Errorf("%dx%d: %w", img.Width, img.Height, errs.ErrInvalidHeader)
	}
	if cfg.checkDimensions && (img.Width > section.QOIMaxDimension || img.Height > section.QOIMaxDimension) {
		return fmt.Errorf("%dx%d exceeds %d: %w", img.Width, img.Height, section.QOIMaxDimension, errs.ErrInvalidHeader)
	}
	if uint64(len(img.Pix)) != uint64(img.Width)*uint64(img.Height) {
		return fmt.Errorf("%d pixels for %dx%d: %w", len(img.Pix), img.Width, img.Height, errs.ErrInvalidArguments)
	}

	return nil
}

// encodePixels appends the op stream for pix to b.
func encodePixels(b []byte, pix []uint32) []byte {
	var cache [encoding.CacheSize]encoding.Pixel
	prev := encoding.OpaqueBlack
	run := 0

	for _, v := range pix {
		px := encoding.Pixel(v)

		if px == prev {
			run++
			if run == encoding.MaxRun {
				b = append(b, encoding.OpRun|byte(run-1))
				run = 0
			}

			continue
		}

		if run > 0 {
			b = append(b, encoding.OpRun|byte(run-1))
			run = 0
		}

		h := px.Hash()
		if cache[h] == px {
			b = append(b, encoding.OpIndex|byte(h))
			prev = px

			continue
		}
		cache[h] = px

		if px.A() != prev.A() {
			b = append(b, encoding.OpRGBA, px.R(), px.G(), px.B(), px.A())
			prev = px

			continue
		}

		dr := int8(px.R() - prev.R())
		dg := int8(px.G() - prev.G())
		db := int8(px.B() - prev.B())
		drg := dr - dg
		dbg := db - dg

		switch {
		case dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1:
			b = append(b, encoding.OpDiff|byte(dr+2)<<4|byte(dg+2)<<2|byte(db+2))
		case dg >= -32 && dg <= 31 && drg >= -8 && drg <= 7 && dbg >= -8 && dbg <= 7:
			b = append(b, encoding.OpLuma|byte(dg+32), byte(drg+8)<<4|byte(dbg+8))
		default:
			b = append(b, encoding.OpRGB, px.R(), px.G(), px.B())
		}
		prev = px
	}

	if run > 0 {
		b = append(b, encoding.OpRun|byte(run-1))
	}

	return b
}
