package qoa

import (
	"time"

	"github.com/yurikit/qmedia/section"
)

// Info describes a QOA stream without decoding it.
type Info struct {
	Channels          int
	SampleRate        int
	SamplesPerChannel int
	// Frames is the number of frames a reference encoder would write for this length.
	Frames int
}

// Duration returns the playback length.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}

	return time.Duration(i.SamplesPerChannel) * time.Second / time.Duration(i.SampleRate)
}

// Probe reads the file header and the first frame header of data.
//
// It performs the same header checks as Decode but allocates no sample memory and does
// not look past the first frame header.
//
// Returns:
//   - Info: stream parameters
//   - error: errs.ErrUnexpectedEOF, errs.ErrNotQOA, errs.ErrUnsupportedStreaming,
//     errs.ErrTooManyChannels, errs.ErrMalformedFrame
func Probe(data []byte) (Info, error) {
	stream, err := parseStream(data)
	if err != nil {
		return Info{}, err
	}

	samples := int(stream.samples)

	return Info{
		Channels:          stream.channels,
		SampleRate:        int(stream.rate),
		SamplesPerChannel: samples,
		Frames:            (samples + section.QOAFrameLen - 1) / section.QOAFrameLen,
	}, nil
}
