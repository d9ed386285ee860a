package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d", tok)
	}
}

func TestLookupIdent(t *testing.T) {
	for lit, tok := range keywords {
		require.Equal(t, tok, LookupIdent(lit))
		require.True(t, IsKeyword(lit))
	}
	require.Equal(t, IDENT, LookupIdent("x"))
	require.False(t, IsKeyword("x"))
}

func TestBinaryPrecedence(t *testing.T) {
	tiers := map[Token]int{
		STAR: precMulDivMod, SLASH: precMulDivMod, PERCENT: precMulDivMod,
		PLUS: precAddSub, MINUS: precAddSub,
		LTLT: precShift, GTGT: precShift,
		LT: precRelational, LE: precRelational, GT: precRelational, GE: precRelational,
		EQL: precEquality, NEQ: precEquality,
		AMPERSAND:  precBitAnd,
		CIRCUMFLEX: precBitXor,
		PIPE:       precBitOr,
		ANDAND:     precLogAnd,
		OROR:       precLogOr,
	}
	for tok, want := range tiers {
		got, ok := BinaryPrecedence(tok)
		require.True(t, ok, "%s", tok)
		require.Equal(t, want, got, "%s", tok)
	}
	_, ok := BinaryPrecedence(ASSIGN)
	require.False(t, ok)
	_, ok = BinaryPrecedence(BANG)
	require.False(t, ok)
}

func TestIsUnaryOp(t *testing.T) {
	require.True(t, IsUnaryOp(BANG))
	require.True(t, IsUnaryOp(TILDE))
	require.True(t, IsUnaryOp(MINUS))
	require.False(t, IsUnaryOp(PLUS))
}
