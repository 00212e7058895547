// Package encoding provides the fixed-point primitives shared by the QOA audio and QOI
// image codecs.
//
// The qoa and qoi packages build whole-file encoders and decoders on top of this package.
// Most users should call those instead; this package is useful when you need to inspect
// slices, reimplement a streaming encoder, or test codec internals.
//
// # Audio primitives
//
// LMS is the four-tap sign-sign adaptive predictor. Every QOA channel owns one, and the
// encoder and decoder must feed it the same reconstructed samples:
//
//	lms := encoding.NewLMS()
//	c := encoding.SearchSlice(lms, 0, samples[:encoding.SliceLen])
//	lms = c.LMS      // state after the slice
//	word := c.Bits   // 64-bit slice to store big-endian
//
// QuantizeSlice simulates a single scale factor, SearchSlice folds it over all sixteen, and
// DecodeSlice runs the inverse. Div, Clamp and ClampS16 implement the exact integer
// arithmetic the format requires.
//
// # Image primitives
//
// Pixel packs an RGBA color as 0xRRGGBBAA. Its Hash method gives the color cache slot, and
// the Op* constants name the chunk tags of the QOI byte stream.
package encoding
