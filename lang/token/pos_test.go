package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSetPosition(t *testing.T) {
	fset := NewFileSet()
	f := fset.AddFile("test", -1, 10)
	// content: "ab\ncd\nefg\n" -> lines start at offsets 0, 3, 6, 10
	f.AddLine(3)
	f.AddLine(6)
	f.AddLine(10)

	cases := []struct {
		off        int
		line, col  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{9, 3, 4},
	}
	for _, c := range cases {
		pos := f.Pos(c.off)
		got := f.Position(pos)
		require.Equal(t, c.line, got.Line, "offset %d", c.off)
		require.Equal(t, c.col, got.Column, "offset %d", c.off)
		require.Equal(t, "test", got.Filename)
		require.True(t, got.IsValid())
	}
}

func TestFileSetMultiFile(t *testing.T) {
	fset := NewFileSet()
	f0 := fset.AddFile("a.txt", -1, 5)
	f1 := fset.AddFile("b.txt", -1, 5)

	require.Same(t, f0, fset.File(f0.Pos(0)))
	require.Same(t, f1, fset.File(f1.Pos(0)))

	pos0 := f0.Position(f0.Pos(2))
	require.Equal(t, "a.txt", pos0.Filename)
	pos1 := f1.Position(f1.Pos(2))
	require.Equal(t, "b.txt", pos1.Filename)
}

func TestNoPos(t *testing.T) {
	require.False(t, Position{}.IsValid())
	require.Equal(t, "-", Position{}.String())
}
