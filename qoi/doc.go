// Package qoi implements the Quite OK Image format: lossless, byte-oriented compression of
// 8-bit RGBA images.
//
// The encoder walks the pixels in row-major order and emits, for each one, the shortest of
// a run of the previous pixel, a reference into a 64-slot color cache, a small delta
// (DIFF or LUMA), or a literal. The decoder is the inverse state machine.
//
//	data, err := qoi.Encode(qoi.Image{Pix: pix, Width: w, Height: h})
//	img, err := qoi.Decode(data, qoi.WithMaxPixels(1<<22))
//
// The encoder always writes a 4-channel sRGB header. The decoder also accepts the 3-channel
// and linear variants written by other encoders; the tags are reported but not interpreted.
//
// Importing this package registers the "qoi" format with the image package, so
// image.Decode reads QOI files transparently.
package qoi
