package qoi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/section"
)

func init() {
	image.RegisterFormat("qoi", "qoif", DecodeImage, DecodeConfig)
}

// DecodeImage reads a whole QOI file from r and returns it as an *image.NRGBA.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return img.NRGBA(), nil
}

// DecodeConfig reads only the QOI header from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [section.QOIHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return image.Config{}, fmt.Errorf("%w: %w", errs.ErrUnexpectedEOF, err)
		}

		return image.Config{}, err
	}

	header, err := section.ParseQOIHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	if err := header.Validate(); err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(header.Width),
		Height:     int(header.Height),
	}, nil
}
