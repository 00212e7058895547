package qoa

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yurikit/qmedia/endian"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/section"
)

// tone returns interleaved sines, one frequency per channel, with a little noise.
func tone(channels, samples, rate int, seed int64) Audio {
	rng := rand.New(rand.NewSource(seed))
	pcm := make([]int16, samples*channels)
	for i := range samples {
		for c := range channels {
			freq := 220.0 * float64(c+1)
			v := 8000*math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) + float64(rng.Intn(64)-32)
			pcm[i*channels+c] = int16(v)
		}
	}

	return Audio{Samples: pcm, Channels: channels, SampleRate: rate}
}

func frameHeaderAt(t *testing.T, data []byte, offset int) section.QOAFrameHeader {
	t.Helper()
	require.GreaterOrEqual(t, len(data), offset+8)

	return section.UnpackQOAFrameHeader(endian.Codec().Uint64(data[offset:]))
}

func putFrameHeaderAt(data []byte, offset int, h section.QOAFrameHeader) {
	endian.Codec().PutUint64(data[offset:], h.Pack())
}

func TestEncodeSilence(t *testing.T) {
	require := require.New(t)

	data, err := Encode(Audio{Samples: make([]int16, 10), Channels: 1, SampleRate: 8000})
	require.NoError(err)

	// file header + one frame: header, one LMS snapshot, one slice
	require.Len(data, 8+8+16+8)
	require.Equal([]byte("qoaf"), data[:4])
	require.Equal(uint32(10), endian.Codec().Uint32(data[4:8]))

	h := frameHeaderAt(t, data, 8)
	require.Equal(section.QOAFrameHeader{Channels: 1, SampleRate: 8000, Samples: 10, Size: 32}, h)

	// initial predictor state
	lms, err := section.ParseLMS(data[16:32])
	require.NoError(err)
	require.Equal([4]int32{0, 0, -8192, 16384}, lms.Weights)
	require.Equal([4]int32{}, lms.History)

	audio, err := Decode(data)
	require.NoError(err)
	require.Equal(1, audio.Channels)
	require.Equal(8000, audio.SampleRate)
	require.Len(audio.Samples, 10)
	for _, s := range audio.Samples {
		require.LessOrEqual(math.Abs(float64(s)), 3.0)
	}
}

func TestEncodeValidation(t *testing.T) {
	tests := []struct {
		name     string
		audio    Audio
		expected error
	}{
		{"nil samples", Audio{Channels: 1, SampleRate: 8000}, errs.ErrInvalidArguments},
		{"empty samples", Audio{Samples: []int16{}, Channels: 1, SampleRate: 8000}, errs.ErrInvalidArguments},
		{"zero channels", Audio{Samples: make([]int16, 4), SampleRate: 8000}, errs.ErrInvalidArguments},
		{"nine channels", Audio{Samples: make([]int16, 9), Channels: 9, SampleRate: 8000}, errs.ErrTooManyChannels},
		{"zero rate", Audio{Samples: make([]int16, 4), Channels: 1}, errs.ErrInvalidArguments},
		{"rate too high", Audio{Samples: make([]int16, 4), Channels: 1, SampleRate: 1 << 24}, errs.ErrInvalidArguments},
		{"ragged", Audio{Samples: make([]int16, 5), Channels: 2, SampleRate: 8000}, errs.ErrInvalidArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.audio)
			require.ErrorIs(t, err, tt.expected)
			require.Nil(t, data)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	const rate = 44100
	// two full frames, a partial frame and a short final slice
	samples := 2*section.QOAFrameLen + 37

	for channels := 1; channels <= section.QOAMaxChannels; channels++ {
		t.Run(string(rune('0'+channels))+"ch", func(t *testing.T) {
			require := require.New(t)

			in := tone(channels, samples, rate, int64(channels))
			enc, err := NewEncoder()
			require.NoError(err)

			data, err := enc.Encode(in)
			require.NoError(err)
			require.Len(data, EncodedSize(samples, channels, section.QOASlicesPerFrame))

			out, err := Decode(data)
			require.NoError(err)
			require.Equal(in.Channels, out.Channels)
			require.Equal(in.SampleRate, out.SampleRate)
			require.Len(out.Samples, len(in.Samples))

			var sumSq uint64
			for i := range in.Samples {
				d := int64(in.Samples[i]) - int64(out.Samples[i])
				sumSq += uint64(d * d)
			}

			// The encoder's rank is squared error plus a non-negative weight penalty, so
			// the decoded error can never exceed what the encoder accounted for.
			require.LessOrEqual(sumSq, enc.ErrorSum())

			rms := math.Sqrt(float64(sumSq) / float64(len(in.Samples)))
			require.Less(rms, 500.0)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	in := tone(2, 3000, 22050, 9)

	enc, err := NewEncoder()
	require.NoError(t, err)

	a, err := enc.Encode(in)
	require.NoError(t, err)
	sum := enc.ErrorSum()

	b, err := enc.Encode(in)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, sum, enc.ErrorSum())

	c, err := Encode(in)
	require.NoError(t, err)
	require.Equal(t, a, c)

	d1, err := Decode(a)
	require.NoError(t, err)
	d2, err := Decode(a)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
}

func TestFrameLayout(t *testing.T) {
	require := require.New(t)

	samples := section.QOAFrameLen + 1
	data, err := Encode(tone(2, samples, 48000, 1))
	require.NoError(err)

	first := frameHeaderAt(t, data, 8)
	require.Equal(uint16(section.QOAFrameLen), first.Samples)
	require.Equal(uint16(section.QOAFrameSize(2, 256)), first.Size)

	second := frameHeaderAt(t, data, 8+int(first.Size))
	require.Equal(uint16(1), second.Samples)
	require.Equal(uint16(section.QOAFrameSize(2, 1)), second.Size)
	require.Equal(uint32(48000), second.SampleRate)
	require.Len(data, 8+int(first.Size)+int(second.Size))
}

func TestWithFrameSlices(t *testing.T) {
	in := tone(1, 100, 8000, 2)

	data, err := Encode(in, WithFrameSlices(1))
	require.NoError(t, err)
	require.Len(t, data, 8+5*section.QOAFrameSize(1, 1))
	require.Len(t, data, EncodedSize(100, 1, 1))

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out.Samples, 100)

	_, err = NewEncoder(WithFrameSlices(0))
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
	_, err = NewEncoder(WithFrameSlices(257))
	require.ErrorIs(t, err, errs.ErrInvalidArguments)
}

func TestDecodeHeaderErrors(t *testing.T) {
	valid, err := Encode(tone(1, 40, 8000, 3))
	require.NoError(t, err)

	t.Run("short input", func(t *testing.T) {
		_, err := Decode(valid[:15])
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

		_, err = Decode(nil)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		copy(data, "qoif")
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrNotQOA)
	})

	t.Run("streaming", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		endian.Codec().PutUint32(data[4:8], 0)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnsupportedStreaming)
	})

	t.Run("streaming without frames", func(t *testing.T) {
		data := []byte{'q', 'o', 'a', 'f', 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnsupportedStreaming)
	})

	t.Run("nine channels", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		h := frameHeaderAt(t, data, 8)
		h.Channels = 9
		putFrameHeaderAt(data, 8, h)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrTooManyChannels)
	})

	t.Run("zero channels", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		h := frameHeaderAt(t, data, 8)
		h.Channels = 0
		putFrameHeaderAt(data, 8, h)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrMalformedFrame)
	})

	t.Run("impossible length", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		endian.Codec().PutUint32(data[4:8], math.MaxUint32)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	})

	t.Run("sample limit", func(t *testing.T) {
		_, err := Decode(valid, WithMaxSamples(39))
		require.ErrorIs(t, err, errs.ErrMemory)

		_, err = Decode(valid, WithMaxSamples(40))
		require.NoError(t, err)
	})
}

func TestDecodeFrameErrors(t *testing.T) {
	// three single-slice frames
	valid, err := Encode(tone(2, 60, 8000, 4), WithFrameSlices(1))
	require.NoError(t, err)
	frameSize := section.QOAFrameSize(2, 1)
	second := 8 + frameSize

	tests := []struct {
		name     string
		mutate   func(h *section.QOAFrameHeader)
		offset   int
		expected error
	}{
		{"rate mismatch", func(h *section.QOAFrameHeader) { h.SampleRate++ }, second, errs.ErrHeaderMismatch},
		{"channel mismatch", func(h *section.QOAFrameHeader) { h.Channels = 1 }, second, errs.ErrHeaderMismatch},
		{"channel overflow", func(h *section.QOAFrameHeader) { h.Channels = 200 }, second, errs.ErrTooManyChannels},
		{"samples beyond capacity", func(h *section.QOAFrameHeader) { h.Samples = 21 }, 8, errs.ErrMalformedFrame},
		{"size below snapshots", func(h *section.QOAFrameHeader) { h.Size = 8 }, 8, errs.ErrMalformedFrame},
		{"size beyond input", func(h *section.QOAFrameHeader) { h.Size = 60000 }, 8, errs.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte(nil), valid...)
			h := frameHeaderAt(t, data, tt.offset)
			tt.mutate(&h)
			putFrameHeaderAt(data, tt.offset, h)

			audio, err := Decode(data)
			require.ErrorIs(t, err, tt.expected)
			require.Nil(t, audio.Samples)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	valid, err := Encode(tone(1, 100, 8000, 5), WithFrameSlices(2))
	require.NoError(t, err)

	for _, cut := range []int{1, 7, 8, 9, 40} {
		_, err := Decode(valid[:len(valid)-cut])
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF, "cut %d", cut)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	valid, err := Encode(tone(1, 100, 8000, 6))
	require.NoError(t, err)

	for _, extra := range []int{1, 8, 64} {
		data := append(append([]byte(nil), valid...), make([]byte, extra)...)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrUnexpectedEOF, "extra %d", extra)
	}
}

func TestDecodeShortfall(t *testing.T) {
	valid, err := Encode(tone(1, 100, 8000, 7))
	require.NoError(t, err)

	data := append([]byte(nil), valid...)
	endian.Codec().PutUint32(data[4:8], 101)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestProbe(t *testing.T) {
	data, err := Encode(tone(2, 2*section.QOAFrameLen+1, 44100, 8))
	require.NoError(t, err)

	info, err := Probe(data)
	require.NoError(t, err)
	require.Equal(t, Info{Channels: 2, SampleRate: 44100, SamplesPerChannel: 2*section.QOAFrameLen + 1, Frames: 3}, info)
	require.Equal(t, time.Duration(2*section.QOAFrameLen+1)*time.Second/44100, info.Duration())

	_, err = Probe(data[:10])
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestAudioDuration(t *testing.T) {
	a := Audio{Samples: make([]int16, 2*44100), Channels: 2, SampleRate: 44100}
	require.Equal(t, 44100, a.SamplesPerChannel())
	require.Equal(t, time.Second, a.Duration())

	require.Zero(t, Audio{}.Duration())
	require.Zero(t, Audio{}.SamplesPerChannel())
}

func BenchmarkEncode(b *testing.B) {
	in := tone(2, 44100, 44100, 1)
	enc, err := NewEncoder()
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = enc.Encode(in)
	}
}

func BenchmarkDecode(b *testing.B) {
	data, err := Encode(tone(2, 44100, 44100, 1))
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Decode(data)
	}
}
