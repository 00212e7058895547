package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yurikit/qmedia/archive"
	"github.com/yurikit/qmedia/asset"
	"github.com/yurikit/qmedia/config"
)

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("check", stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	workers := fs.Int("workers", 0, "decode workers")
	timeout := fs.Duration("timeout", time.Minute, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: yuri check [flags] <archive.yuri>")
		fs.PrintDefaults()

		return exitUsage
	}

	cfg, logger, err := loadConfig(fs, *configPath, map[string]func(*config.Config){
		"workers": func(c *config.Config) { c.Assets.Workers = *workers },
	})
	if err != nil {
		return fail(stderr, err)
	}

	r, err := archive.Open(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}

	reg, err := asset.NewRegistry(
		asset.WithWorkers(cfg.Assets.Workers),
		asset.WithLogger(logger),
		asset.WithDecodeLimits(cfg.Assets.MaxPixels, cfg.Assets.MaxSamples),
	)
	if err != nil {
		return fail(stderr, err)
	}
	defer func() { _ = reg.Close() }()

	if err := reg.Mount(r); err != nil {
		return fail(stderr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := reg.Start(ctx); err != nil {
		return fail(stderr, err)
	}

	assets := reg.Assets()
	for _, a := range assets {
		reg.Acquire(a)
	}

	failed := 0
	for _, a := range assets {
		if err := a.Wait(ctx); err != nil {
			fmt.Fprintf(stdout, "%-30s . %8s . FAIL . %v\n", a.Name(), a.Type(), err)
			failed++

			continue
		}

		meta, _ := a.Meta()
		switch {
		case meta.Image != nil:
			fmt.Fprintf(stdout, "%-30s . %8s . %dx%d\n", a.Name(), a.Type(), meta.Image.Width, meta.Image.Height)
		case meta.Audio != nil:
			fmt.Fprintf(stdout, "%-30s . %8s . %d ch . %d Hz . %s\n", a.Name(), a.Type(),
				meta.Audio.Channels, meta.Audio.SampleRate, meta.Audio.Duration().Round(time.Millisecond))
		default:
			fmt.Fprintf(stdout, "%-30s . %8s . %d bytes\n", a.Name(), a.Type(), len(meta.Data))
		}
		reg.Release(a)
	}

	// workers share stderr with the summary below
	if err := reg.Close(); err != nil {
		return fail(stderr, err)
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "yuri: %d of %d assets failed to load\n", failed, len(assets))
		return exitFailure
	}
	fmt.Fprintf(stdout, "* %d assets loaded\n", len(assets))

	return exitOK
}
