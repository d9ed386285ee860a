package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/types"
)

func TestArrayIndexing(t *testing.T) {
	d := mustLookup(t, "uchar")
	elems := []types.Cell{
		types.NewConstantCell(d, types.NewInt(10)),
		types.NewConstantCell(d, types.NewInt(20)),
	}
	arr := types.NewArray(d, elems)
	require.Equal(t, 2, arr.Len())

	v, err := arr.Index(0)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(10), v)

	_, err = arr.Index(2)
	require.ErrorIs(t, err, types.ErrOutOfRangeIndex)

	_, err = arr.Index(-1)
	require.ErrorIs(t, err, types.ErrOutOfRangeIndex)
}

func TestArraySetIndex(t *testing.T) {
	d := mustLookup(t, "int")
	elems := []types.Cell{types.NewMutableCell(d, types.NewInt(0))}
	arr := types.NewArray(d, elems)
	require.NoError(t, arr.SetIndex(0, types.NewInt(5)))
	v, err := arr.Index(0)
	require.NoError(t, err)
	require.Equal(t, types.NewInt(5), v)
}

func TestStructAttrAccess(t *testing.T) {
	desc := types.NewStructDescriptor("Header", nil, nil)
	s := types.NewStruct(desc)
	intD := mustLookup(t, "int")
	s.Define("magic", types.NewConstantCell(intD, types.NewInt(42)))

	v, err := s.Attr("magic")
	require.NoError(t, err)
	require.Equal(t, types.NewInt(42), v)

	_, err = s.Attr("missing")
	require.ErrorIs(t, err, types.ErrNoSuchMember)

	require.Equal(t, []string{"magic"}, s.AttrNames())
}

func TestStructSetField(t *testing.T) {
	desc := types.NewStructDescriptor("Header", nil, nil)
	s := types.NewStruct(desc)
	intD := mustLookup(t, "int")
	s.Define("n", types.NewMutableCell(intD, types.NewInt(0)))

	require.NoError(t, s.SetField("n", types.NewInt(7)))
	v, err := s.Attr("n")
	require.NoError(t, err)
	require.Equal(t, types.NewInt(7), v)

	require.ErrorIs(t, s.SetField("missing", types.NewInt(1)), types.ErrNoSuchMember)
}
