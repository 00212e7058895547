package qoi

import (
	"image"
	"image/draw"

	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/format"
)

// Image is an RGBA image with pixels packed as 0xRRGGBBAA in row-major order.
type Image struct {
	Pix    []uint32
	Width  int
	Height int
	// Channels and Colorspace are the header tags of a decoded file. The encoder ignores them.
	Channels   uint8
	Colorspace uint8
}

// At returns the pixel at (x, y).
func (img Image) At(x, y int) encoding.Pixel {
	return encoding.Pixel(img.Pix[y*img.Width+x])
}

// NRGBA converts img to a standard library image. QOI stores straight (non-premultiplied)
// alpha, which is what image.NRGBA holds.
func (img Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, v := range img.Pix {
		p := encoding.Pixel(v)
		o := i * 4
		out.Pix[o+0] = p.R()
		out.Pix[o+1] = p.G()
		out.Pix[o+2] = p.B()
		out.Pix[o+3] = p.A()
	}

	return out
}

// FromImage converts any image to an Image, going through image.NRGBA.
func FromImage(src image.Image) Image {
	b := src.Bounds()

	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	img := Image{
		Pix:        make([]uint32, b.Dx()*b.Dy()),
		Width:      b.Dx(),
		Height:     b.Dy(),
		Channels:   format.ChannelsRGBA,
		Colorspace: format.ColorspaceSRGB,
	}
	for i := range img.Pix {
		o := i * 4
		img.Pix[i] = uint32(encoding.NewPixel(nrgba.Pix[o], nrgba.Pix[o+1], nrgba.Pix[o+2], nrgba.Pix[o+3]))
	}

	return img
}
