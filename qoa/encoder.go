package qoa

import (
	"github.com/yurikit/qmedia/encoding"
	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/section"
)

// Encoder encodes PCM audio to QOA.
//
// An Encoder may be reused for any number of Encode calls; every call starts from fresh
// predictor state. It is NOT safe for concurrent use.
type Encoder struct {
	cfg *encoderConfig

	lms      [section.QOAMaxChannels]encoding.LMS
	prevSF   [section.QOAMaxChannels]int
	errorSum uint64
}

// NewEncoder creates an Encoder.
//
// Returns:
//   - *Encoder: ready to use encoder
//   - error: errs.ErrInvalidArguments for an invalid option value
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// ErrorSum returns the summed rank of every slice written by the last Encode call.
// Lower is better; it is zero only for a lossless encoding.
func (e *Encoder) ErrorSum() uint64 {
	return e.errorSum
}

// Encode encodes a into a complete QOA file.
//
// Parameters:
//   - a: interleaved PCM with 1..8 channels, a sample rate in 1..16777215 and at least
//     one sample per channel
//
// Returns:
//   - []byte: the encoded file, owned by the caller
//   - error: errs.ErrInvalidArguments for empty or inconsistent input,
//     errs.ErrTooManyChannels for more than 8 channels
func (e *Encoder) Encode(a Audio) ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	channels := a.Channels
	samples := a.SamplesPerChannel()
	frameLen := e.cfg.frameSlices * encoding.SliceLen

	for c := range channels {
		e.lms[c] = encoding.NewLMS()
		e.prevSF[c] = 0
	}
	e.errorSum = 0

	engine := endian.Codec()
	out := make([]byte, 0, EncodedSize(samples, channels, e.cfg.frameSlices))
	out = append(out, section.QOAFileHeader{Samples: uint32(samples)}.Bytes()...)

	var slice [encoding.SliceLen]int16
	for start := 0; start < samples; start += frameLen {
		frameSamples := min(frameLen, samples-start)
		slices := (frameSamples + encoding.SliceLen - 1) / encoding.SliceLen

		header := section.QOAFrameHeader{
			Channels:   uint8(channels),
			SampleRate: uint32(a.SampleRate),
			Samples:    uint16(frameSamples),
			Size:       uint16(section.QOAFrameSize(channels, slices)),
		}
		out = engine.AppendUint64(out, header.Pack())

		for c := range channels {
			out = section.AppendLMS(out, e.lms[c])
		}

		frame := a.Samples[start*channels : (start+frameSamples)*channels]
		for s := 0; s < frameSamples; s += encoding.SliceLen {
			n := min(encoding.SliceLen, frameSamples-s)
			for c := range channels {
				for i := range n {
					slice[i] = frame[(s+i)*channels+c]
				}

				best := encoding.SearchSlice(e.lms[c], e.prevSF[c], slice[:n])
				e.lms[c] = best.LMS
				e.prevSF[c] = best.ScaleFactor
				e.errorSum += best.Rank

				out = engine.AppendUint64(out, best.Bits)
			}
		}
	}

	return out, nil
}

// Encode encodes a with a one-off Encoder. See Encoder.Encode.
func Encode(a Audio, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(a)
}

// EncodedSize returns the exact byte size of a QOA file holding samples per channel.
// frameSlices is the number of slices per full frame (256 by default).
func EncodedSize(samples, channels, frameSlices int) int {
	frameLen := frameSlices * encoding.SliceLen
	fullFrames := samples / frameLen
	size := section.QOAFileHeaderSize + fullFrames*section.QOAFrameSize(channels, frameSlices)

	if rest := samples % frameLen; rest > 0 {
		slices := (rest + encoding.SliceLen - 1) / encoding.SliceLen
		size += section.QOAFrameSize(channels, slices)
	}

	return size
}
