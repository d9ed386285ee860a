package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

func TestIntBinaryArithmetic(t *testing.T) {
	x, y := types.NewInt(7), types.NewInt(2)
	v, err := x.Binary(token.PLUS, y, types.Left)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(9), v)

	v, err = x.Binary(token.SLASH, y, types.Left)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(3), v)

	_, err = x.Binary(token.SLASH, types.NewInt(0), types.Left)
	require.ErrorIs(t, err, types.ErrDivisionByZero)

	_, err = x.Binary(token.PERCENT, types.NewInt(0), types.Left)
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestIntComparisonsRenderAsInt(t *testing.T) {
	x, y := types.NewInt(3), types.NewInt(5)
	v, err := x.Binary(token.LT, y, types.Left)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(1), v)

	v, err = x.Binary(token.GT, y, types.Left)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(0), v)
}

func TestIntUnary(t *testing.T) {
	x := types.NewInt(5)
	v, err := x.Unary(token.MINUS)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(-5), v)

	v, err = x.Unary(token.BANG)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(0), v)

	v, err = x.Unary(token.TILDE)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(^int64(5)), v)
}

func TestStringConcat(t *testing.T) {
	v, err := types.Str("foo").Binary(token.PLUS, types.Str("bar"), types.Left)
	require.NoError(t, err)
	require.Equal(t, types.Str("foobar"), v)
}

func TestIntFloatMixedBinary(t *testing.T) {
	i := types.NewInt(2)
	f := types.Float{Desc: mustLookup(t, "float"), V: 0.5}
	v, err := i.Binary(token.PLUS, f, types.Left)
	require.NoError(t, err)
	got, ok := v.(types.Float)
	require.True(t, ok)
	require.Equal(t, 2.5, got.V)
}

func mustLookup(t *testing.T, name string) *types.TypeDescriptor {
	t.Helper()
	d, ok := types.Lookup(name)
	require.True(t, ok)
	return d
}

func TestTruth(t *testing.T) {
	require.Equal(t, types.Bool(false), types.NewInt(0).Truth())
	require.Equal(t, types.Bool(true), types.NewInt(1).Truth())
	require.Equal(t, types.Bool(false), types.Str("").Truth())
	require.Equal(t, types.Bool(true), types.Str("x").Truth())
}
