// Command bintmpl is the standalone CLI for the binary template language:
// it exposes each pipeline stage (preprocess, tokenize, parse) plus a "run"
// command that interprets a template against a target file.
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
