// Package config loads the TOML configuration of the yuri tool and the asset registry.
//
// Values are layered: built-in defaults, then the configuration file, then QMEDIA_*
// environment variables. Command line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
)

// Config is the complete configuration.
type Config struct {
	Package Package `toml:"package"`
	Assets  Assets  `toml:"assets"`
	Log     Log     `toml:"log"`
}

// Package configures archive creation.
type Package struct {
	Workers          int    `toml:"workers"`
	Compression      string `toml:"compression"`       // none|zstd|s2|lz4, non-codec assets
	CodecCompression string `toml:"codec_compression"` // none|zstd|s2|lz4, QOA and QOI blobs
}

// Assets configures the asset registry.
type Assets struct {
	Workers         int      `toml:"workers"`
	CollectInterval Duration `toml:"collect_interval"`
	MaxPixels       uint64   `toml:"max_pixels"`
	MaxSamples      uint64   `toml:"max_samples"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const envPrefix = "QMEDIA_"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Package: Package{
			Workers:          4,
			Compression:      "none",
			CodecCompression: "none",
		},
		Assets: Assets{
			Workers:         2,
			CollectInterval: Duration{30 * time.Second},
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the file at path and the environment.
//
// An empty path or a missing file yields the defaults. Keys the configuration does not
// define are rejected, so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
			cfg = Default()
		case err != nil:
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, fmt.Errorf("config %s: unknown key %q: %w", path, undecoded[0].String(), errs.ErrInvalidArguments)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode parses TOML from r over the defaults, without consulting the environment.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q: %w", undecoded[0].String(), errs.ErrInvalidArguments)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"PACKAGE_WORKERS": &c.Package.Workers,
		"ASSETS_WORKERS":  &c.Assets.Workers,
	}
	for key, dst := range ints {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"PACKAGE_COMPRESSION":       &c.Package.Compression,
		"PACKAGE_CODEC_COMPRESSION": &c.Package.CodecCompression,
		"LOG_LEVEL":                 &c.Log.Level,
		"LOG_FORMAT":                &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "ASSETS_COLLECT_INTERVAL"); ok {
		if err := c.Assets.CollectInterval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sASSETS_COLLECT_INTERVAL: %w", envPrefix, err)
		}
	}

	return nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.Package.Workers < 1 {
		return fmt.Errorf("package.workers %d: %w", c.Package.Workers, errs.ErrInvalidArguments)
	}
	if c.Assets.Workers < 1 {
		return fmt.Errorf("assets.workers %d: %w", c.Assets.Workers, errs.ErrInvalidArguments)
	}
	if c.Assets.CollectInterval.Duration < 0 {
		return fmt.Errorf("assets.collect_interval %s: %w", c.Assets.CollectInterval, errs.ErrInvalidArguments)
	}
	if _, err := c.Package.CompressionType(); err != nil {
		return err
	}
	if _, err := c.Package.CodecCompressionType(); err != nil {
		return err
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("log.format %q: %w", c.Log.Format, errs.ErrInvalidArguments)
	}

	return nil
}

// CompressionType returns the codec for non-codec assets.
func (p Package) CompressionType() (format.CompressionType, error) {
	return parseCompression("package.compression", p.Compression)
}

// CodecCompressionType returns the codec for QOA and QOI assets.
func (p Package) CodecCompressionType() (format.CompressionType, error) {
	return parseCompression("package.codec_compression", p.CodecCompression)
}

func parseCompression(key, name string) (format.CompressionType, error) {
	c, ok := format.ParseCompression(name)
	if !ok {
		return 0, fmt.Errorf("%s %q: %w", key, name, errs.ErrInvalidArguments)
	}

	return c, nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", l.Level, errs.ErrInvalidArguments)
	}

	return level, nil
}

// Logger builds a logger writing to w.
func (l Log) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}
