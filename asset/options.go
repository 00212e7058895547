package asset

import (
	"fmt"
	"log/slog"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/internal/options"
)

const (
	// WorkerLimit caps the number of decode workers.
	WorkerLimit = 8
	// DefaultWorkers is the worker count when WithWorkers is not given.
	DefaultWorkers = 2
)

type registryConfig struct {
	workers    int
	logger     *slog.Logger
	maxPixels  uint64
	maxSamples uint64
}

func newRegistryConfig() *registryConfig {
	return &registryConfig{
		workers: DefaultWorkers,
		logger:  slog.Default(),
	}
}

// Option configures a Registry.
type Option = options.Option[*registryConfig]

// WithWorkers sets the number of decode workers. Values above WorkerLimit are clamped when
// the registry starts.
func WithWorkers(n int) Option {
	return options.New(func(c *registryConfig) error {
		if n < 1 {
			return fmt.Errorf("%d workers: %w", n, errs.ErrInvalidArguments)
		}
		c.workers = n

		return nil
	})
}

// WithLogger sets the logger for worker and collector events.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(c *registryConfig) error {
		if l == nil {
			return fmt.Errorf("nil logger: %w", errs.ErrInvalidArguments)
		}
		c.logger = l

		return nil
	})
}

// WithDecodeLimits bounds the pixels of decoded images and the samples of decoded sounds.
// Zero leaves a limit unset.
func WithDecodeLimits(maxPixels, maxSamples uint64) Option {
	return options.NoError(func(c *registryConfig) {
		c.maxPixels = maxPixels
		c.maxSamples = maxSamples
	})
}
