package qoi

import (
	"github.com/yurikit/qmedia/internal/options"
)

type encoderConfig struct {
	checkDimensions bool
}

// EncoderOption configures Encode.
type EncoderOption = options.Option[*encoderConfig]

// WithDimensionCheck controls whether Encode rejects images wider or taller than 16384
// pixels, the largest size decoders accept. It is enabled by default.
func WithDimensionCheck(enabled bool) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.checkDimensions = enabled
	})
}

type decoderConfig struct {
	maxPixels uint64
}

// DecoderOption configures Decode.
type DecoderOption = options.Option[*decoderConfig]

// WithMaxPixels limits the number of pixels Decode will allocate.
// Larger images fail with errs.ErrMemory before any allocation. Zero means no limit.
func WithMaxPixels(n uint64) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.maxPixels = n
	})
}
