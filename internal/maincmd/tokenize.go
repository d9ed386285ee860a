package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/lang/scanner"
	"github.com/mna/bintmpl/lang/token"
)

// Tokenize preprocesses then scans each file in args, printing every token
// it produces.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

func TokenizeFiles(_ context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, lt, err := preprocessFile(file)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		fset := token.NewFileSet()
		toks, serr := scanner.ScanAll(fset, file, src)
		for _, tv := range toks {
			pos := resolvePos(lt, fset.Position(tv.Value.Pos))
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tv.Token)
			if tv.Value.Raw != "" {
				fmt.Fprintf(stdio.Stdout, " %s", tv.Value.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if serr != nil {
			printErrors(stdio.Stderr, lt, serr)
			if firstErr == nil {
				firstErr = serr
			}
		}
	}
	return firstErr
}
