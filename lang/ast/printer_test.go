package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

func TestPrinterPrintsTree(t *testing.T) {
	chunk := &ast.Chunk{
		Name: "main.tpl",
		Block: &ast.Block{
			Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.IdentExpr{Name: "x", Pos: 1}, End: 2},
			},
		},
	}

	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf}
	require.NoError(t, p.Print(chunk))

	out := buf.String()
	require.Contains(t, out, "chunk main.tpl")
	require.Contains(t, out, "expr-stmt")
	require.Contains(t, out, "ident x")
}

func TestPrinterWithPositions(t *testing.T) {
	fset := token.NewFileSet()
	fset.AddFile("main.tpl", -1, 10)
	chunk := &ast.Chunk{Block: &ast.Block{}}

	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf, Positions: fset}
	require.NoError(t, p.Print(chunk))
	require.Contains(t, buf.String(), "chunk")
}
