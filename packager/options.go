package packager

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/internal/options"
)

type packagerConfig struct {
	workers          int
	compression      format.CompressionType
	codecCompression format.CompressionType
	logger           *slog.Logger
}

func newPackagerConfig() *packagerConfig {
	return &packagerConfig{
		workers:          runtime.GOMAXPROCS(0),
		compression:      format.CompressionNone,
		codecCompression: format.CompressionNone,
		logger:           slog.Default(),
	}
}

// Option configures Package.
type Option = options.Option[*packagerConfig]

// WithWorkers sets the number of files converted concurrently. The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return options.New(func(c *packagerConfig) error {
		if n < 1 {
			return fmt.Errorf("%d workers: %w", n, errs.ErrInvalidArguments)
		}
		c.workers = n

		return nil
	})
}

// WithCompression sets the payload codec of non-codec assets (scenes, scripts, shaders...).
func WithCompression(c format.CompressionType) Option {
	return options.NoError(func(cfg *packagerConfig) {
		cfg.compression = c
	})
}

// WithCodecCompression sets the payload codec of QOI and QOA assets.
func WithCodecCompression(c format.CompressionType) Option {
	return options.NoError(func(cfg *packagerConfig) {
		cfg.codecCompression = c
	})
}

// WithLogger sets the logger that reports every packed asset.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(c *packagerConfig) error {
		if l == nil {
			return fmt.Errorf("nil logger: %w", errs.ErrInvalidArguments)
		}
		c.logger = l

		return nil
	})
}
