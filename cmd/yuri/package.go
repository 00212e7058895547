package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/yurikit/qmedia/config"
	"github.com/yurikit/qmedia/packager"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("yuri "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

// loadConfig reads the configuration file and overlays the flags the user set.
func loadConfig(fs *flag.FlagSet, path string, overrides map[string]func(*config.Config)) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&cfg)
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger, err := cfg.Log.Logger(fs.Output())
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, logger, nil
}

func runPackage(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("package", stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	workers := fs.Int("workers", 0, "parallel conversions")
	compression := fs.String("compression", "", "payload compression for non-codec assets (none|zstd|s2|lz4)")
	codecCompression := fs.String("codec-compression", "", "payload compression for QOI and QOA assets")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: yuri package [flags] <src-dir> <out.yuri>")
		fs.PrintDefaults()

		return exitUsage
	}

	cfg, logger, err := loadConfig(fs, *configPath, map[string]func(*config.Config){
		"workers":           func(c *config.Config) { c.Package.Workers = *workers },
		"compression":       func(c *config.Config) { c.Package.Compression = *compression },
		"codec-compression": func(c *config.Config) { c.Package.CodecCompression = *codecCompression },
	})
	if err != nil {
		return fail(stderr, err)
	}

	plain, _ := cfg.Package.CompressionType()
	codec, _ := cfg.Package.CodecCompressionType()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, out := fs.Arg(0), fs.Arg(1)
	w, results, err := packager.Package(ctx, src,
		packager.WithWorkers(cfg.Package.Workers),
		packager.WithCompression(plain),
		packager.WithCodecCompression(codec),
		packager.WithLogger(logger),
	)
	if err != nil {
		return fail(stderr, err)
	}
	if err := w.WriteFile(out); err != nil {
		return fail(stderr, err)
	}

	var source int
	for _, r := range results {
		source += r.SourceSize
	}
	fmt.Fprintf(stdout, "* Packed %d assets into %s (%.2fKB from %.2fKB of sources)\n",
		len(results), out, float64(w.Size())/1024, float64(source)/1024)

	return exitOK
}
