package encoding

import "math"

const (
	// SliceLen is the number of samples per channel packed into one 64-bit slice.
	SliceLen = 20
	// ScaleFactors is the number of quantizer rows a slice can select.
	ScaleFactors = 16
)

// reciprocalTable maps each scale factor to round(65536 / scale), so that the encoder can
// divide residuals with a multiply and a shift.
var reciprocalTable = [ScaleFactors]int32{
	65536, 9363, 3121, 1457, 781, 475, 311, 216, 156, 117, 90, 71, 57, 47, 39, 32,
}

// quantTable maps a scaled residual in -8..8 (offset by 8) to its 3-bit code.
// Zero shares a code with +1 because Div always rounds away from zero.
var quantTable = [17]uint8{
	7, 7, 7, 5, 5, 3, 3, 1, // -8..-1
	0,                      //  0
	0, 2, 2, 4, 4, 6, 6, 6, //  1.. 8
}

// DequantTable maps [scale factor][code] to the reconstructed residual.
var DequantTable = [ScaleFactors][8]int16{
	{1, -1, 3, -3, 5, -5, 7, -7},
	{5, -5, 18, -18, 32, -32, 49, -49},
	{16, -16, 53, -53, 95, -95, 147, -147},
	{34, -34, 113, -113, 203, -203, 315, -315},
	{63, -63, 210, -210, 378, -378, 588, -588},
	{104, -104, 345, -345, 621, -621, 966, -966},
	{158, -158, 528, -528, 950, -950, 1477, -1477},
	{228, -228, 760, -760, 1368, -1368, 2128, -2128},
	{316, -316, 1053, -1053, 1895, -1895, 2947, -2947},
	{422, -422, 1405, -1405, 2529, -2529, 3934, -3934},
	{548, -548, 1828, -1828, 3290, -3290, 5117, -5117},
	{696, -696, 2320, -2320, 4176, -4176, 6496, -6496},
	{868, -868, 2893, -2893, 5207, -5207, 8099, -8099},
	{1064, -1064, 3548, -3548, 6386, -6386, 9933, -9933},
	{1286, -1286, 4288, -4288, 7718, -7718, 12005, -12005},
	{1536, -1536, 5120, -5120, 9216, -9216, 14336, -14336},
}

// Div divides v by the scale of scaleFactor using the reciprocal table, rounding away from zero.
// The product wraps at 32 bits, matching the fixed-point arithmetic of existing encoders.
func Div(v int, scaleFactor int) int {
	reciprocal := reciprocalTable[scaleFactor]
	n := int((int32(v)*reciprocal + (1 << 15)) >> 16)

	return n + sign(v) - sign(n)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// ClampS16 limits v to the signed 16-bit range.
func ClampS16(v int) int {
	if uint(v+32768) > 65535 {
		if v < -32768 {
			return -32768
		}
		if v > 32767 {
			return 32767
		}
	}

	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SliceCandidate is the outcome of quantizing one slice with one scale factor.
type SliceCandidate struct {
	LMS         LMS    // predictor state after the slice
	Bits        uint64 // packed slice word: 4-bit scale factor + 20 3-bit codes, MSB first
	Rank        uint64 // squared reconstruction error plus weight penalty
	ScaleFactor int
	Aborted     bool // rank exceeded the bound before the slice was complete
}

// QuantizeSlice simulates encoding samples with scaleFactor starting from lms.
//
// The function is pure: lms is taken by value and the resulting state is returned in the
// candidate. Simulation stops as soon as the running rank exceeds bound, in which case
// the candidate is marked Aborted and its LMS and Bits are meaningless.
//
// Parameters:
//   - lms: predictor state at the start of the slice
//   - scaleFactor: quantizer row, 0..15
//   - samples: up to SliceLen samples of one channel
//   - bound: best rank found so far (math.MaxUint64 for none)
//
// Returns:
//   - SliceCandidate: final state, rank and packed word; shorter slices are left-aligned
//     with zero bits in the unused low positions
func QuantizeSlice(lms LMS, scaleFactor int, samples []int16, bound uint64) SliceCandidate {
	c := SliceCandidate{
		ScaleFactor: scaleFactor,
		Bits:        uint64(scaleFactor),
	}

	for _, s := range samples {
		sample := int(s)
		predicted := lms.Predict()
		residual := sample - predicted
		scaled := Clamp(Div(residual, scaleFactor), -8, 8)
		quantized := quantTable[scaled+8]
		dequantized := int(DequantTable[scaleFactor][quantized])
		reconstructed := ClampS16(predicted + dequantized)

		penalty := lms.weightPenalty()
		diff := int64(sample - reconstructed)
		c.Rank += uint64(diff*diff + penalty*penalty)
		if c.Rank > bound {
			c.Aborted = true
			return c
		}

		lms.Update(reconstructed, dequantized)
		c.Bits = c.Bits<<3 | uint64(quantized)
	}

	c.Bits <<= uint((SliceLen - len(samples)) * 3)
	c.LMS = lms

	return c
}

// SearchSlice picks the scale factor with the lowest rank for samples.
//
// Candidates are visited starting at prevScaleFactor and wrapping around, so that a
// channel's previous choice is tried first and bounds the rest of the search. Ties keep
// the earliest visited candidate.
func SearchSlice(lms LMS, prevScaleFactor int, samples []int16) SliceCandidate {
	best := SliceCandidate{Rank: math.MaxUint64}
	for i := range ScaleFactors {
		sf := (prevScaleFactor + i) & (ScaleFactors - 1)
		c := QuantizeSlice(lms, sf, samples, best.Rank)
		if !c.Aborted && c.Rank < best.Rank {
			best = c
		}
	}

	return best
}

// SliceScaleFactor extracts the scale factor from a packed slice word.
func SliceScaleFactor(word uint64) int {
	return int(word>>60) & 0xF
}

// SliceCode extracts the i-th 3-bit residual code from a packed slice word.
func SliceCode(word uint64, i int) int {
	return int(word>>(57-3*uint(i))) & 0x7
}

// DecodeSlice reconstructs n samples from word, writing them to dst[0], dst[stride], ...
// and advancing lms exactly as the encoder did.
func DecodeSlice(lms *LMS, word uint64, n int, dst []int16, stride int) {
	sf := SliceScaleFactor(word)
	word <<= 4
	for i := range n {
		predicted := lms.Predict()
		dequantized := int(DequantTable[sf][word>>61])
		reconstructed := ClampS16(predicted + dequantized)
		dst[i*stride] = int16(reconstructed)
		word <<= 3

		lms.Update(reconstructed, dequantized)
	}
}
