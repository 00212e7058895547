// Command yuri builds, inspects and extracts YURI asset archives.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_ = writeDoc(stdout, "help")
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "package":
		return runPackage(rest, stdout, stderr)
	case "list":
		return runList(rest, stdout, stderr)
	case "extract":
		return runExtract(rest, stdout, stderr)
	case "check":
		return runCheck(rest, stdout, stderr)
	case "docs":
		return runDocs(rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		_ = writeDoc(stdout, "help")
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		_ = writeDoc(stderr, "help")

		return exitUsage
	}
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, "yuri:", err)
	return exitFailure
}
