package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/mna/bintmpl/lang/token"
)

// Printer controls pretty-printing of the AST nodes, used by the CLI's
// "parse" subcommand to dump a parsed chunk for inspection.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Positions, when non-nil, prints each node's start:end source position
	// using it to resolve line:column. Leave nil to omit positions.
	Positions *token.FileSet

	// ResolvePosition, when set, post-processes every Position resolved via
	// Positions before it's printed. Callers that print positions from a
	// preprocessed source stream use this to rebase each Position back to
	// the original #include file and line, the same way a preprocessed
	// chunk's runtime errors are rebased.
	ResolvePosition func(token.Position) token.Position

	// NodeFmt is the format string to use to print the nodes. The verb must
	// be either `s` or `v`, a width can be set, and the `#` and `-` flags are
	// supported (`-` only when a width is set, to pad with spaces on the
	// right instead of the left). Defaults to `%v`.
	NodeFmt string
}

// Print pretty-prints the AST node n as an indented tree, one line per
// node, in the order Walk visits them.
func (p *Printer) Print(n Node) error {
	pp := &printer{
		w:       p.Output,
		fset:    p.Positions,
		resolve: p.ResolvePosition,
		nodeFmt: p.NodeFmt,
	}
	if p.NodeFmt == "" {
		pp.nodeFmt = "%v"
	}

	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	fset    *token.FileSet
	resolve func(token.Position) token.Position
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.fset != nil {
		format += "[%s:%s] "
		start, end := n.Span()
		startPos, endPos := p.fset.Position(start), p.fset.Position(end)
		if p.resolve != nil {
			startPos, endPos = p.resolve(startPos), p.resolve(endPos)
		}
		args = append(args, startPos.String(), endPos.String())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
