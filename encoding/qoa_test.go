package encoding

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiv(t *testing.T) {
	tests := []struct {
		v, sf, expected int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{-1, 0, -1},
		{7, 0, 7},
		{1, 15, 1},   // rounds away from zero
		{-1, 15, -1}, // rounds away from zero
		{2048, 15, 1},
		{-2048, 15, -1},
		{0, 15, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, Div(tt.v, tt.sf), "Div(%d, %d)", tt.v, tt.sf)
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, -8, Clamp(-100, -8, 8))
	require.Equal(t, 8, Clamp(9, -8, 8))
	require.Equal(t, 3, Clamp(3, -8, 8))

	require.Equal(t, 32767, ClampS16(40000))
	require.Equal(t, -32768, ClampS16(-40000))
	require.Equal(t, 32767, ClampS16(32767))
	require.Equal(t, -32768, ClampS16(-32768))
	require.Equal(t, 0, ClampS16(0))
}

func TestQuantTableSymmetry(t *testing.T) {
	// Every code maps to a dequantized value with the sign of the residual that produced it.
	for v := -8; v <= 8; v++ {
		if v == 0 {
			continue
		}
		q := quantTable[v+8]
		deq := DequantTable[0][q]
		require.Equal(t, v > 0, deq > 0, "residual %d", v)
	}
}

func TestSliceWordAccessors(t *testing.T) {
	var word uint64 = 0xA << 60
	for i := range SliceLen {
		word |= uint64(i%8) << (57 - 3*uint(i))
	}

	require.Equal(t, 0xA, SliceScaleFactor(word))
	for i := range SliceLen {
		require.Equal(t, i%8, SliceCode(word, i))
	}
}

func randomSamples(rng *rand.Rand, n int) []int16 {
	samples := make([]int16, n)
	phase := rng.Float64()
	for i := range samples {
		v := 12000*math.Sin(phase+float64(i)*0.21) + float64(rng.Intn(800)-400)
		samples[i] = int16(v)
	}

	return samples
}

func TestQuantizeSliceDecodesToSameState(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lms := NewLMS()

	for range 50 {
		samples := randomSamples(rng, SliceLen)
		for sf := range ScaleFactors {
			c := QuantizeSlice(lms, sf, samples, math.MaxUint64)
			require.False(t, c.Aborted)
			require.Equal(t, sf, SliceScaleFactor(c.Bits))

			decoded := lms
			out := make([]int16, SliceLen)
			DecodeSlice(&decoded, c.Bits, SliceLen, out, 1)
			require.Equal(t, c.LMS, decoded, "scale factor %d", sf)
		}
		lms = SearchSlice(lms, 0, samples).LMS
	}
}

func TestQuantizeSliceShortSlice(t *testing.T) {
	samples := []int16{100, 200, 300, 400, 500}
	c := QuantizeSlice(NewLMS(), 4, samples, math.MaxUint64)

	require.False(t, c.Aborted)
	require.Equal(t, 4, SliceScaleFactor(c.Bits))
	require.Zero(t, c.Bits&(1<<(15*3)-1), "unused codes must be zero")

	decoded := NewLMS()
	out := make([]int16, len(samples))
	DecodeSlice(&decoded, c.Bits, len(samples), out, 1)
	require.Equal(t, c.LMS, decoded)
}

func TestQuantizeSliceAbort(t *testing.T) {
	samples := []int16{30000, -30000, 30000, -30000}
	c := QuantizeSlice(NewLMS(), 0, samples, 0)
	require.True(t, c.Aborted)
}

func TestSearchSliceMatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := range 30 {
		lms := NewLMS()
		samples := randomSamples(rng, SliceLen)
		prev := trial % ScaleFactors

		best := SliceCandidate{Rank: math.MaxUint64}
		for i := range ScaleFactors {
			sf := (prev + i) % ScaleFactors
			c := QuantizeSlice(lms, sf, samples, math.MaxUint64)
			if c.Rank < best.Rank {
				best = c
			}
		}

		got := SearchSlice(lms, prev, samples)
		require.Equal(t, best.ScaleFactor, got.ScaleFactor)
		require.Equal(t, best.Rank, got.Rank)
		require.Equal(t, best.Bits, got.Bits)
		require.Equal(t, best.LMS, got.LMS)
	}
}

func TestSearchSliceDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	samples := randomSamples(rng, SliceLen)

	a := SearchSlice(NewLMS(), 5, samples)
	b := SearchSlice(NewLMS(), 5, samples)
	require.Equal(t, a, b)
}

func TestDecodeSliceStride(t *testing.T) {
	samples := []int16{10, 20, 30}
	c := QuantizeSlice(NewLMS(), 0, samples, math.MaxUint64)

	out := make([]int16, 3*2)
	lms := NewLMS()
	DecodeSlice(&lms, c.Bits, 3, out[1:], 2)

	require.Zero(t, out[0])
	require.Zero(t, out[2])
	require.Zero(t, out[4])
	require.Equal(t, c.LMS.History[3], int32(out[5]))
}

func BenchmarkSearchSlice(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	samples := randomSamples(rng, SliceLen)
	lms := NewLMS()

	for b.Loop() {
		_ = SearchSlice(lms, 0, samples)
	}
}
