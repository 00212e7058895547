package archive

import (
	"fmt"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/options"
)

type writerConfig struct {
	compression      format.CompressionType
	codecCompression format.CompressionType
}

func newWriterConfig() *writerConfig {
	return &writerConfig{
		compression:      format.CompressionNone,
		codecCompression: format.CompressionNone,
	}
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

func checkCompression(c format.CompressionType) error {
	switch c {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("compression %d: %w", c, errs.ErrInvalidArguments)
	}
}

// WithCompression sets the default payload codec for entries that are not QOA or QOI blobs.
func WithCompression(c format.CompressionType) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		if err := checkCompression(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithCodecCompression sets the default payload codec for image and audio entries.
// Those are already entropy coded, so the default is CompressionNone.
func WithCodecCompression(c format.CompressionType) WriterOption {
	return options.New(func(cfg *writerConfig) error {
		if err := checkCompression(c); err != nil {
			return err
		}
		cfg.codecCompression = c

		return nil
	})
}

func (c *writerConfig) compressionFor(t format.AssetType) format.CompressionType {
	if t == format.AssetImage || t == format.AssetAudio {
		return c.codecCompression
	}

	return c.compression
}
