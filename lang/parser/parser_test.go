package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/parser"
	"github.com/mna/bintmpl/lang/token"
)

func mustParse(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	fset := token.NewFileSet()
	ch, err := parser.ParseChunk(fset, "test", []byte(src))
	require.NoError(t, err)
	return ch
}

func TestParseVarDefn(t *testing.T) {
	ch := mustParse(t, "int x; uchar data[16];")
	require.Len(t, ch.Block.Stmts, 2)

	v1, ok := ch.Block.Stmts[0].(*ast.VarDefnStmt)
	require.True(t, ok)
	require.Equal(t, "x", v1.Name)
	require.Equal(t, "int", v1.Type.Name)

	v2, ok := ch.Block.Stmts[1].(*ast.VarDefnStmt)
	require.True(t, ok)
	require.Equal(t, "data", v2.Name)
	require.NotNil(t, v2.ArrayLen)
}

func TestParseLocalVarDefnWithInit(t *testing.T) {
	ch := mustParse(t, "local int total = 1 + 2;")
	require.Len(t, ch.Block.Stmts, 1)
	local, ok := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	require.True(t, ok)
	require.Equal(t, "total", local.Name)
	require.NotNil(t, local.Init)
	bin, ok := local.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
}

func TestParseStructDefnWithInstantiation(t *testing.T) {
	ch := mustParse(t, "struct Header { int magic; uchar version; } hdr;")
	require.Len(t, ch.Block.Stmts, 1)
	s, ok := ch.Block.Stmts[0].(*ast.StructDefnStmt)
	require.True(t, ok)
	require.Equal(t, "Header", s.Tag)
	require.Equal(t, "hdr", s.InstName)
	require.Len(t, s.Body.Stmts, 2)
}

func TestParseStructAsVarDefn(t *testing.T) {
	ch := mustParse(t, "struct Header h;")
	require.Len(t, ch.Block.Stmts, 1)
	v, ok := ch.Block.Stmts[0].(*ast.VarDefnStmt)
	require.True(t, ok)
	require.Equal(t, "h", v.Name)
	require.Equal(t, token.STRUCT, v.Type.Keyword)
	require.Equal(t, "Header", v.Type.Name)
}

func TestParseTypedefStruct(t *testing.T) {
	ch := mustParse(t, "typedef struct { int x; } Point;")
	s, ok := ch.Block.Stmts[0].(*ast.StructDefnStmt)
	require.True(t, ok)
	require.True(t, s.Typedef)
	require.Equal(t, "Point", s.TypedefName)
}

func TestParseEnumDefn(t *testing.T) {
	ch := mustParse(t, "enum <int> Color { RED, GREEN = 5, BLUE };")
	e, ok := ch.Block.Stmts[0].(*ast.EnumDefnStmt)
	require.True(t, ok)
	require.Equal(t, "Color", e.Tag)
	require.Len(t, e.Members, 3)
	require.Nil(t, e.Members[0].Value)
	require.NotNil(t, e.Members[1].Value)
}

func TestParseFuncDefn(t *testing.T) {
	ch := mustParse(t, "int add(int a, int b) { return a + b; }")
	fn, ok := ch.Block.Stmts[0].(*ast.FuncDefnStmt)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok = fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
}

func TestParseIfElseIf(t *testing.T) {
	ch := mustParse(t, `
		if (x == 1) { y = 1; }
		else if (x == 2) { y = 2; }
		else { y = 3; }
	`)
	ifs, ok := ch.Block.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Else)
	elseIf, ok := ifs.Else.(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, elseIf.Else)
}

func TestParseForLoop(t *testing.T) {
	ch := mustParse(t, "for (local int i = 0; i < 10; i = i + 1) { x = i; }")
	f, ok := ch.Block.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Post)
}

func TestParseWhileLoweredToFor(t *testing.T) {
	ch := mustParse(t, "while (x < 10) { x = x + 1; }")
	f, ok := ch.Block.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.Nil(t, f.Init)
	require.Nil(t, f.Post)
	require.NotNil(t, f.Cond)
}

func TestParseSwitch(t *testing.T) {
	ch := mustParse(t, `
		switch (x) {
		case 1:
			y = 1;
		case 2:
			y = 2;
		default:
			y = 0;
		}
	`)
	sw, ok := ch.Block.Stmts[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)
	require.Empty(t, sw.Cases[2].Values)
}

func TestParseCastExpr(t *testing.T) {
	ch := mustParse(t, "local int x = (int) 1;")
	local, ok := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	require.True(t, ok)
	cast, ok := local.Init.(*ast.CastExpr)
	require.True(t, ok)
	require.Equal(t, "int", cast.Type.Name)
}

func TestParseCastOfStructType(t *testing.T) {
	ch := mustParse(t, "local int x = (struct Header) y;")
	local, ok := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	require.True(t, ok)
	cast, ok := local.Init.(*ast.CastExpr)
	require.True(t, ok)
	require.Equal(t, token.STRUCT, cast.Type.Keyword)
	require.Equal(t, "Header", cast.Type.Name)
}

func TestParsePrecedenceFolding(t *testing.T) {
	ch := mustParse(t, "local int x = 1 + 2 * 3;")
	local := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	bin, ok := local.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.STAR, rhs.Op)
}

func TestParseTernary(t *testing.T) {
	ch := mustParse(t, "local int x = a ? 1 : 2;")
	local := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	cond, ok := local.Init.(*ast.CondExpr)
	require.True(t, ok)
	require.NotNil(t, cond.Then)
	require.NotNil(t, cond.Else)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	ch := mustParse(t, "x = y = 1;")
	stmt, ok := ch.Block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	assign, ok := stmt.X.(*ast.AssignExpr)
	require.True(t, ok)
	_, ok = assign.Right.(*ast.AssignExpr)
	require.True(t, ok)
}

func TestParseMemberAndIndexChain(t *testing.T) {
	ch := mustParse(t, "local int x = a.b[1].c;")
	local := ch.Block.Stmts[0].(*ast.LocalVarDefnStmt)
	dot, ok := local.Init.(*ast.DotExpr)
	require.True(t, ok)
	require.Equal(t, "c", dot.Name)
}

func TestParseErrorRecovery(t *testing.T) {
	fset := token.NewFileSet()
	_, err := parser.ParseChunk(fset, "test", []byte("int x = ; int y;"))
	require.Error(t, err)
}
