package main

import (
	"embed"
	"fmt"
	"io"
	"os"
)

//go:embed docs/*.txt
var docs embed.FS

func writeDoc(w io.Writer, name string) error {
	text, err := docs.ReadFile("docs/" + name + ".txt")
	if err != nil {
		return fmt.Errorf("unknown document %q", name)
	}
	_, err = w.Write(text)

	return err
}

func runDocs(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(stderr, "usage: yuri docs <help|yuri|errors> [out-file]")
		return exitUsage
	}

	if len(args) == 1 {
		if err := writeDoc(stdout, args[0]); err != nil {
			return fail(stderr, err)
		}

		return exitOK
	}

	f, err := os.Create(args[1])
	if err != nil {
		return fail(stderr, err)
	}
	if err := writeDoc(f, args[0]); err != nil {
		_ = f.Close()
		_ = os.Remove(args[1])

		return fail(stderr, err)
	}
	if err := f.Close(); err != nil {
		return fail(stderr, err)
	}

	return exitOK
}
