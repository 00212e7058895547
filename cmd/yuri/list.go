package main

import (
	"fmt"
	"io"

	"github.com/yurikit/qmedia/archive"
)

func runList(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("list", stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: yuri list <archive.yuri>")
		return exitUsage
	}

	r, err := archive.Open(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "* %s: %d assets\n", fs.Arg(0), r.Len())
	for i, h := range r.All() {
		fmt.Fprintf(stdout, "%03d : %-30s . %8s . 0x%08X . 0x%02X . %8.2fKB\n",
			i+1, h.Name, h.Type, h.Checksum, uint8(h.Flag), float64(h.Size)/1024)
	}

	failed := 0
	for i, h := range r.All() {
		if _, err := r.Read(h); err != nil {
			fmt.Fprintf(stdout, "%03d : %-30s . FAIL . %v\n", i+1, h.Name, err)
			failed++

			continue
		}
		fmt.Fprintf(stdout, "%03d : %-30s . PASS\n", i+1, h.Name)
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "yuri: %d of %d checksums failed\n", failed, r.Len())
		return exitFailure
	}

	fmt.Fprintln(stdout, "* Archive OK")

	return exitOK
}
