package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/scanner"
	"github.com/mna/bintmpl/lang/token"
)

func scanTokens(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()
	fset := token.NewFileSet()
	toks, err := scanner.ScanAll(fset, "test", []byte(src))
	require.NoError(t, err)
	return toks
}

func tokKinds(toks []scanner.TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := scanTokens(t, "int x; struct Foo { uchar data[n]; };")
	kinds := tokKinds(toks)
	require.Equal(t, []token.Token{
		token.IDENT, token.IDENT, token.SEMI,
		token.STRUCT, token.IDENT, token.LBRACE,
		token.IDENT, token.IDENT, token.LBRACK, token.IDENT, token.RBRACK, token.SEMI,
		token.RBRACE, token.SEMI,
		token.EOF,
	}, kinds)
}

func TestScanNumbers(t *testing.T) {
	toks := scanTokens(t, "0 123 0x1F 0b101 0o17 1_000")
	for _, tv := range toks {
		if tv.Token == token.EOF {
			continue
		}
		require.Equal(t, token.NUMBER, tv.Token, tv.Value.Raw)
	}
	require.Equal(t, int64(0), toks[0].Value.Int)
	require.Equal(t, int64(123), toks[1].Value.Int)
	require.Equal(t, int64(31), toks[2].Value.Int)
	require.Equal(t, int64(5), toks[3].Value.Int)
	require.Equal(t, int64(15), toks[4].Value.Int)
	require.Equal(t, int64(1000), toks[5].Value.Int)
}

func TestScanString(t *testing.T) {
	toks := scanTokens(t, `"hello\nworld\x41"`)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "hello\nworldA", toks[0].Value.String)
}

func TestScanOperators(t *testing.T) {
	toks := scanTokens(t, "== != <= >= << >> && || = + - * / % & | ^ ! ~")
	kinds := tokKinds(toks)
	want := []token.Token{
		token.EQL, token.NEQ, token.LE, token.GE, token.LTLT, token.GTGT,
		token.ANDAND, token.OROR, token.ASSIGN, token.PLUS, token.MINUS,
		token.STAR, token.SLASH, token.PERCENT, token.AMPERSAND, token.PIPE,
		token.CIRCUMFLEX, token.BANG, token.TILDE, token.EOF,
	}
	require.Equal(t, want, kinds)
}

func TestScanLineAndBlockComments(t *testing.T) {
	toks := scanTokens(t, "int x; // comment\n/* block\ncomment */ int y;")
	kinds := tokKinds(toks)
	require.Equal(t, []token.Token{
		token.IDENT, token.IDENT, token.SEMI,
		token.IDENT, token.IDENT, token.SEMI,
		token.EOF,
	}, kinds)
}

func TestScanFileMarkerAtColumnZero(t *testing.T) {
	toks := scanTokens(t, "#file main.tpl 1\nint x;\n")
	kinds := tokKinds(toks)
	require.Equal(t, []token.Token{token.IDENT, token.IDENT, token.SEMI, token.EOF}, kinds)
}

func TestScanIllegalCharacter(t *testing.T) {
	fset := token.NewFileSet()
	_, err := scanner.ScanAll(fset, "test", []byte("int x; @ int y;"))
	require.Error(t, err)
}
