package host_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/host"
)

func TestBufferRecordsAnnotations(t *testing.T) {
	b := host.NewBuffer([]byte{1, 2, 3, 4})
	require.NoError(t, b.SetDataType(0, 4, "s32le"))
	require.NoError(t, b.SetComment(0, 4, "x"))
	require.Equal(t, []host.DataType{{Offset: 0, Length: 4, Code: "s32le"}}, b.DataTypes)
	require.Equal(t, []host.Comment{{Offset: 0, Length: 4, Text: "x"}}, b.Comments)
}

func TestBufferShortRead(t *testing.T) {
	b := host.NewBuffer([]byte{1, 2})
	got, err := b.ReadData(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, got)
}

func TestBufferReadPastEnd(t *testing.T) {
	b := host.NewBuffer([]byte{1, 2})
	got, err := b.ReadData(5, 4)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBufferYieldDefault(t *testing.T) {
	b := host.NewBuffer(nil)
	require.NoError(t, b.Yield())
}

func TestBufferYieldCustom(t *testing.T) {
	b := host.NewBuffer(nil)
	wantErr := errors.New("aborted")
	b.Yielder = func() error { return wantErr }
	require.ErrorIs(t, b.Yield(), wantErr)
}

func TestAdapterAppliesSelectionOff(t *testing.T) {
	b := host.NewBuffer([]byte{0, 0, 0, 0, 9, 9})
	a := &host.Adapter{Host: b, SelectionOff: 4}

	require.NoError(t, a.SetDataType(0, 2, "u16le"))
	require.Equal(t, int64(4), b.DataTypes[0].Offset)

	got, err := a.ReadData(0, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, got)
}
