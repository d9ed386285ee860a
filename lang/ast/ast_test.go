package ast_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

func TestChunkSpanEmpty(t *testing.T) {
	ch := &ast.Chunk{EOF: 42}
	start, end := ch.Span()
	require.Equal(t, token.Pos(42), start)
	require.Equal(t, token.Pos(42), end)
}

func TestBlockSpan(t *testing.T) {
	b := &ast.Block{Start: 1, End: 10, Stmts: []ast.Stmt{
		&ast.BreakStmt{Start: 2, End: 3},
	}}
	start, end := b.Span()
	require.Equal(t, token.Pos(1), start)
	require.Equal(t, token.Pos(10), end)
}

func TestWalkCountsNodes(t *testing.T) {
	// x = 1 + 2;
	assign := &ast.AssignExpr{
		Left:  &ast.IdentExpr{Name: "x", Pos: 1},
		OpPos: 3,
		Right: &ast.BinaryExpr{
			Left:  &ast.NumberExpr{Value: 1, Raw: "1", Pos: 5},
			Op:    token.PLUS,
			OpPos: 7,
			Right: &ast.NumberExpr{Value: 2, Raw: "2", Pos: 9},
		},
	}
	block := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: assign, End: 10}}}
	chunk := &ast.Chunk{Block: block}

	var count int
	ast.Walk(ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			count++
		}
		return ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
			if dir == ast.VisitEnter {
				count++
			}
			return nil
		})
	}), chunk)

	require.Greater(t, count, 0)
}

func TestIsAssignable(t *testing.T) {
	require.True(t, ast.IsAssignable(&ast.IdentExpr{Name: "x"}))
	require.True(t, ast.IsAssignable(&ast.DotExpr{Name: "y"}))
	require.True(t, ast.IsAssignable(&ast.IndexExpr{}))
	require.False(t, ast.IsAssignable(&ast.NumberExpr{}))
	require.False(t, ast.IsAssignable(&ast.CallExpr{}))
}

func TestUnwrapParens(t *testing.T) {
	inner := &ast.IdentExpr{Name: "x"}
	wrapped := &ast.ParenExpr{X: &ast.ParenExpr{X: inner}}
	require.Same(t, inner, ast.Unwrap(wrapped))
	require.Same(t, inner, ast.Unwrap(inner))
}

func TestFormatNode(t *testing.T) {
	n := &ast.IdentExpr{Name: "foo", Pos: 1}
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, "%v", n)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "foo")
}
