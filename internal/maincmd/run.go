package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/bintmpl/host"
	"github.com/mna/bintmpl/lang/interp"
	"github.com/mna/bintmpl/lang/parser"
	"github.com/mna/bintmpl/lang/token"
)

// Run preprocesses and parses the template at args[0], then interprets it
// against the target buffer at args[1], printing every SetDataType,
// SetComment and Print call the template made.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunTemplate(ctx, stdio, args[0], args[1])
}

func RunTemplate(ctx context.Context, stdio mainer.Stdio, template, target string) error {
	src, lt, err := preprocessFile(template)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	chunk, perr := parser.ParseChunk(fset, template, src)
	if perr != nil {
		printErrors(stdio.Stderr, lt, perr)
		return perr
	}

	data, err := os.ReadFile(target)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	buf := host.NewBuffer(data)
	if err := interp.Run(ctx, fset, lt, chunk, buf); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	for _, dt := range buf.DataTypes {
		fmt.Fprintf(stdio.Stdout, "set_data_type %d %d %s\n", dt.Offset, dt.Length, dt.Code)
	}
	for _, cm := range buf.Comments {
		fmt.Fprintf(stdio.Stdout, "set_comment %d %d %q\n", cm.Offset, cm.Length, cm.Text)
	}
	for _, p := range buf.Prints {
		fmt.Fprintf(stdio.Stdout, "print %q\n", p)
	}
	return nil
}
