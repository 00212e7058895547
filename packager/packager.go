package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yurikit/qmedia/archive"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/ingest"
	"github.com/yurikit/qmedia/internal/options"
	"github.com/yurikit/qmedia/qoa"
	"github.com/yurikit/qmedia/qoi"
	"github.com/yurikit/qmedia/section"
)

// Result describes one packed asset.
type Result struct {
	Path       string // source file
	Name       string
	Type       format.AssetType
	SourceSize int
	Size       int // payload size before archive compression
	Stored     int // bytes stored in the archive
	Checksum   uint32
	Flag       section.EntryFlag
	Converted  bool // re-encoded from BMP or WAV
	Elapsed    time.Duration
}

type job struct {
	path string
	name string
	rule rule
}

// Package converts every asset below srcDir and adds it to a new archive writer.
//
// Parameters:
//   - ctx: cancels outstanding conversions
//   - srcDir: directory whose subdirectories hold the source files
//   - opts: worker count, payload compression and logger
//
// Returns:
//   - *archive.Writer: the assembled archive, entries in sorted path order
//   - []Result: one result per entry, same order
//   - error: the first read, parse or encode failure wrapped with the file path,
//     errs.ErrArchiveLimit when more than ArchiveListLimit assets are found,
//     errs.ErrInvalidEntryName when two files map to the same type and name
func Package(ctx context.Context, srcDir string, opts ...Option) (*archive.Writer, []Result, error) {
	cfg := newPackagerConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, nil, err
	}

	w, err := archive.NewWriter(
		archive.WithCompression(cfg.compression),
		archive.WithCodecCompression(cfg.codecCompression),
	)
	if err != nil {
		return nil, nil, err
	}

	jobs, err := scan(srcDir)
	if err != nil {
		return nil, nil, err
	}
	if len(jobs) > section.ArchiveListLimit {
		return nil, nil, fmt.Errorf("%d assets in %s: %w", len(jobs), srcDir, errs.ErrArchiveLimit)
	}

	results := make([]Result, len(jobs))
	payloads := make([][]byte, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			payload, res, err := convert(j)
			if err != nil {
				return fmt.Errorf("%s: %w", j.path, err)
			}
			payloads[i], results[i] = payload, res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for i := range jobs {
		res := &results[i]
		if err := w.Add(archive.Entry{Type: res.Type, Name: res.Name, Data: payloads[i]}); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", res.Path, err)
		}

		e := w.Entries()[i]
		res.Stored = int(e.Size)
		res.Checksum = e.Checksum
		res.Flag = e.Flag

		cfg.logger.Info("asset packed",
			"index", i+1,
			"name", res.Name,
			"type", res.Type.String(),
			"checksum", fmt.Sprintf("0x%08X", res.Checksum),
			"flag", fmt.Sprintf("0x%02X", uint8(res.Flag)),
			"size_kb", fmt.Sprintf("%.2f", float64(res.Stored)/1024),
		)
	}

	return w, results, nil
}

// scan lists the classified files of every top-level subdirectory in sorted order.
func scan(srcDir string) ([]job, error) {
	top, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}

	var jobs []job
	for _, d := range top {
		dirPath := filepath.Join(srcDir, d.Name())
		if !isDir(dirPath) {
			continue
		}

		files, err := os.ReadDir(dirPath)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			if strings.HasPrefix(f.Name(), ".") {
				continue
			}
			path := filepath.Join(dirPath, f.Name())
			if isDir(path) {
				continue
			}

			r, ok := classify(f.Name())
			if !ok {
				continue
			}
			jobs = append(jobs, job{path: path, name: AssetName(d.Name(), f.Name()), rule: r})
		}
	}

	return jobs, nil
}

// isDir follows symbolic links.
func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func convert(j job) ([]byte, Result, error) {
	start := time.Now()

	data, err := os.ReadFile(j.path)
	if err != nil {
		return nil, Result{}, err
	}

	res := Result{
		Path:       j.path,
		Name:       j.name,
		Type:       j.rule.typ,
		SourceSize: len(data),
	}

	payload := data
	switch j.rule.convert {
	case convertBMP:
		img, err := ingest.ReadBMP(data)
		if err != nil {
			return nil, Result{}, err
		}
		if payload, err = qoi.Encode(img); err != nil {
			return nil, Result{}, err
		}
		res.Converted = true
	case convertWAV:
		audio, err := ingest.ReadWAV(data)
		if err != nil {
			return nil, Result{}, err
		}
		if payload, err = qoa.Encode(audio); err != nil {
			return nil, Result{}, err
		}
		res.Converted = true
	case checkQOI:
		h, err := section.ParseQOIHeader(data)
		if err != nil {
			return nil, Result{}, err
		}
		if err := h.Validate(); err != nil {
			return nil, Result{}, err
		}
	case checkQOA:
		if _, err := qoa.Probe(data); err != nil {
			return nil, Result{}, err
		}
	}

	res.Size = len(payload)
	res.Elapsed = time.Since(start)

	return payload, res, nil
}
