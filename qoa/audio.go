package qoa

import (
	"fmt"
	"math"
	"time"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/section"
)

// Audio is interleaved 16-bit PCM.
type Audio struct {
	// Samples holds SamplesPerChannel()*Channels values, channel-interleaved.
	Samples    []int16
	Channels   int
	SampleRate int
}

// SamplesPerChannel returns the number of sample frames.
func (a Audio) SamplesPerChannel() int {
	if a.Channels <= 0 {
		return 0
	}

	return len(a.Samples) / a.Channels
}

// Duration returns the playback length.
func (a Audio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}

	return time.Duration(a.SamplesPerChannel()) * time.Second / time.Duration(a.SampleRate)
}

func (a Audio) validate() error {
	switch {
	case a.Channels <= 0:
		return fmt.Errorf("channels %d: %w", a.Channels, errs.ErrInvalidArguments)
	case a.Channels > section.QOAMaxChannels:
		return fmt.Errorf("channels %d: %w", a.Channels, errs.ErrTooManyChannels)
	case a.SampleRate <= 0 || a.SampleRate > section.QOAMaxSampleRate:
		return fmt.Errorf("sample rate %d: %w", a.SampleRate, errs.ErrInvalidArguments)
	case len(a.Samples) == 0:
		return fmt.Errorf("no samples: %w", errs.ErrInvalidArguments)
	case len(a.Samples)%a.Channels != 0:
		return fmt.Errorf("%d samples not divisible by %d channels: %w", len(a.Samples), a.Channels, errs.ErrInvalidArguments)
	case uint64(a.SamplesPerChannel()) > math.MaxUint32:
		return fmt.Errorf("%d samples per channel: %w", a.SamplesPerChannel(), errs.ErrInvalidArguments)
	}

	return nil
}
