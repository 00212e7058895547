package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLMS(t *testing.T) {
	lms := NewLMS()
	require.Equal(t, [LMSLen]int32{0, 0, -8192, 16384}, lms.Weights)
	require.Equal(t, [LMSLen]int32{}, lms.History)
	require.Equal(t, 0, lms.Predict())
}

func TestLMSPredict(t *testing.T) {
	tests := []struct {
		name     string
		lms      LMS
		expected int
	}{
		{
			name:     "linear extrapolation",
			lms:      LMS{History: [LMSLen]int32{0, 0, 100, 200}, Weights: [LMSLen]int32{0, 0, -8192, 16384}},
			expected: 300,
		},
		{
			name:     "floors negative results",
			lms:      LMS{History: [LMSLen]int32{0, 0, 0, -1}, Weights: [LMSLen]int32{0, 0, 0, 1}},
			expected: -1,
		},
		{
			name:     "truncates positive results",
			lms:      LMS{History: [LMSLen]int32{0, 0, 0, 1}, Weights: [LMSLen]int32{0, 0, 0, 8191}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.lms.Predict())
		})
	}
}

func TestLMSUpdate(t *testing.T) {
	require := require.New(t)

	lms := LMS{
		History: [LMSLen]int32{-5, 0, 7, -1},
		Weights: [LMSLen]int32{10, 20, 30, 40},
	}
	lms.Update(1234, 160) // delta = 10

	require.Equal([LMSLen]int32{0, 30, 40, 30}, lms.Weights)
	require.Equal([LMSLen]int32{0, 7, -1, 1234}, lms.History)

	lms.Update(-3, -33) // delta = -3 (arithmetic shift)
	require.Equal([LMSLen]int32{-3, 27, 43, 27}, lms.Weights)
	require.Equal([LMSLen]int32{7, -1, 1234, -3}, lms.History)
}

func TestLMSWeightPenalty(t *testing.T) {
	lms := NewLMS()
	require.Equal(t, int64(0), lms.weightPenalty())

	lms.Weights = [LMSLen]int32{1 << 14, 1 << 14, 1 << 14, 1 << 14}
	// 4 * 2^28 >> 18 = 4096
	require.Equal(t, int64(4096-0x8FF), lms.weightPenalty())
}
