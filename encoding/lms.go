package encoding

// LMSLen is the number of taps of the adaptive predictor.
const LMSLen = 4

// LMS is the state of the sign-sign least-mean-squares predictor for one audio channel.
//
// History holds the last four reconstructed samples, most recent last. Weights are the
// matching fixed-point (.13) filter coefficients.
//
// Encoder and decoder must drive Update with identical reconstructed samples, otherwise
// their states diverge and every following sample decodes wrong. LMS is a value type:
// copying it snapshots the predictor, which the quantizer search relies on.
type LMS struct {
	History [LMSLen]int32
	Weights [LMSLen]int32
}

// NewLMS returns the encoder's initial predictor state.
//
// The weights start as a second-order extrapolation (2*h[3] - h[2]), which predicts the
// first samples of a stream far better than an all-zero filter.
func NewLMS() LMS {
	return LMS{
		Weights: [LMSLen]int32{0, 0, -(1 << 13), 1 << 14},
	}
}

// Predict returns the dot product of weights and history, shifted right by 13.
// The shift truncates toward negative infinity; it is not rounded.
func (l *LMS) Predict() int {
	prediction := 0
	for i := range LMSLen {
		prediction += int(l.Weights[i]) * int(l.History[i])
	}

	return prediction >> 13
}

// Update adapts the weights by the sign of each history tap and appends sample to the history.
//
// Parameters:
//   - sample: the reconstructed (dequantized + predicted, clamped) sample, never the encoder input
//   - residual: the dequantized residual that produced sample
func (l *LMS) Update(sample, residual int) {
	delta := int32(residual >> 4)
	for i := range LMSLen {
		if l.History[i] < 0 {
			l.Weights[i] -= delta
		} else {
			l.Weights[i] += delta
		}
	}

	l.History[0] = l.History[1]
	l.History[1] = l.History[2]
	l.History[2] = l.History[3]
	l.History[3] = int32(sample)
}

// weightPenalty returns the rank penalty for large filter weights.
// Weights beyond roughly 16 bits make the filter unstable and produce audible clicks.
func (l *LMS) weightPenalty() int64 {
	var sum int64
	for i := range LMSLen {
		w := int64(l.Weights[i])
		sum += w * w
	}

	penalty := (sum >> 18) - 0x8FF
	if penalty < 0 {
		return 0
	}

	return penalty
}
