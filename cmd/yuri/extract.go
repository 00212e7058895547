package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yurikit/qmedia/archive"
	"github.com/yurikit/qmedia/errs"
	"github.com/yurikit/qmedia/format"
	"github.com/yurikit/qmedia/ingest"
	"github.com/yurikit/qmedia/packager"
	"github.com/yurikit/qmedia/qoa"
	"github.com/yurikit/qmedia/qoi"
)

func runExtract(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("extract", stderr)
	decode := fs.Bool("decode", false, "write images as BMP and sounds as WAV")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: yuri extract [-decode] <archive.yuri> <out-dir>")
		return exitUsage
	}

	r, err := archive.Open(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}

	outDir := fs.Arg(1)
	for _, h := range r.All() {
		path, err := extractPath(outDir, h, *decode)
		if err != nil {
			return fail(stderr, err)
		}

		data, err := r.Open(h)
		if err != nil {
			return fail(stderr, fmt.Errorf("%s: %w", h.Name, err))
		}
		if *decode {
			if data, err = decodePayload(h.Type, data); err != nil {
				return fail(stderr, fmt.Errorf("%s: %w", h.Name, err))
			}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fail(stderr, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintf(stdout, "%s -> %s\n", h.Name, path)
	}

	fmt.Fprintf(stdout, "* Extracted %d assets into %s\n", r.Len(), outDir)

	return exitOK
}

// extractPath maps an asset name to a file below outDir, refusing names that would
// escape it.
func extractPath(outDir string, h archive.Header, decode bool) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(h.Name, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", h.Name, errs.ErrInvalidEntryName)
	}

	ext := packager.Extension(h.Type)
	if decode {
		switch h.Type {
		case format.AssetImage:
			ext = ".bmp"
		case format.AssetAudio:
			ext = ".wav"
		}
	}

	return filepath.Join(outDir, rel+ext), nil
}

func decodePayload(t format.AssetType, data []byte) ([]byte, error) {
	switch t {
	case format.AssetImage:
		img, err := qoi.Decode(data)
		if err != nil {
			return nil, err
		}

		return ingest.WriteBMP(img)
	case format.AssetAudio:
		a, err := qoa.Decode(data)
		if err != nil {
			return nil, err
		}

		return ingest.WriteWAV(a)
	default:
		return data, nil
	}
}
