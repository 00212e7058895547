package qoa

import (
	"fmt"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/section"
)

type encoderConfig struct {
	frameSlices int
}

func newEncoderConfig() *encoderConfig {
	return &encoderConfig{frameSlices: section.QOASlicesPerFrame}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*encoderConfig]

// WithFrameSlices sets the number of slices per channel in each full frame.
//
// The default is 256, the largest value the format allows. Smaller frames cost 8 + 16 bytes
// per channel more header overhead per frame but let decoders seek at a finer granularity.
//
// Parameters:
//   - n: slices per frame, 1..256
func WithFrameSlices(n int) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		if n < 1 || n > section.QOASlicesPerFrame {
			return fmt.Errorf("frame slices %d: %w", n, errs.ErrInvalidArguments)
		}
		c.frameSlices = n

		return nil
	})
}

type decoderConfig struct {
	maxSamples uint64
}

// DecoderOption configures Decode.
type DecoderOption = options.Option[*decoderConfig]

// WithMaxSamples limits the number of interleaved samples Decode will allocate.
// Streams declaring more fail with errs.ErrMemory before any allocation. Zero means no limit.
func WithMaxSamples(n uint64) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.maxSamples = n
	})
}
