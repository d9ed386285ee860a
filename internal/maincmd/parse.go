package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/parser"
	"github.com/mna/bintmpl/lang/token"
)

// Parse preprocesses then parses each file in args, printing the resulting
// AST for each.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, c.WithPos, args...)
}

func ParseFiles(_ context.Context, stdio mainer.Stdio, withPos bool, files ...string) error {
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
		chunk, perr := parser.ParseChunk(fset, file, src)

		printer := ast.Printer{Output: stdio.Stdout}
		if withPos {
			printer.Positions = fset
			printer.ResolvePosition = func(pos token.Position) token.Position { return resolvePos(lt, pos) }
		}
		if perr2 := printer.Print(chunk); perr2 != nil {
			fmt.Fprintln(stdio.Stderr, perr2)
			if firstErr == nil {
				firstErr = perr2
			}
		}

		if perr != nil {
			printErrors(stdio.Stderr, lt, perr)
			if firstErr == nil {
				firstErr = perr
			}
		}
	}
	return firstErr
}
