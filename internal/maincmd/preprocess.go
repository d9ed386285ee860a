package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/lang/preprocess"
)

// Preprocess runs the #include-inlining pass on each file in args and
// prints the resulting concatenated stream (including its "#file NAME
// LINE" markers) to stdout, one file at a time.
func (c *Cmd) Preprocess(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return PreprocessFiles(ctx, stdio, args...)
}

func PreprocessFiles(_ context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		out, _, err := preprocess.Run(file, preprocess.DiskReader{})
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprint(stdio.Stdout, out)
	}
	return firstErr
}
