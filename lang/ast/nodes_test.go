package ast_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
)

func TestTypeExprFormat(t *testing.T) {
	plain := &ast.TypeExpr{Name: "int", Start: 1, End: 4}
	require.Contains(t, fmtNode(plain), "type int")

	structTy := &ast.TypeExpr{Keyword: token.STRUCT, Name: "Foo", Start: 1, End: 10}
	require.Contains(t, fmtNode(structTy), "struct Foo")
}

func TestParamSpan(t *testing.T) {
	p := &ast.Param{
		Type: &ast.TypeExpr{Name: "int", Start: 1, End: 4},
		Name: "x",
		Pos:  5,
	}
	start, end := p.Span()
	require.Equal(t, token.Pos(1), start)
	require.Equal(t, token.Pos(6), end)
}

func TestEnumMemberSpanWithAndWithoutValue(t *testing.T) {
	m := &ast.EnumMember{Name: "RED", Pos: 1}
	_, end := m.Span()
	require.Equal(t, token.Pos(4), end)

	withVal := &ast.EnumMember{Name: "RED", Pos: 1, Value: &ast.NumberExpr{Raw: "0", Pos: 7}}
	_, end = withVal.Span()
	require.Equal(t, token.Pos(8), end)
}

func TestCaseClauseDefaultFormat(t *testing.T) {
	c := &ast.CaseClause{Start: 1, End: 5}
	require.Contains(t, fmtNode(c), "default")

	withVal := &ast.CaseClause{Start: 1, End: 5, Values: []ast.Expr{&ast.NumberExpr{Raw: "1"}}}
	require.Contains(t, fmtNode(withVal), "case")
}

func fmtNode(n ast.Node) string {
	return fmt.Sprintf("%v", n)
}
