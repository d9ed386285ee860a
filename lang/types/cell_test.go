package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/types"
)

type fakeReader struct {
	buf []byte
}

func (f *fakeReader) ReadData(offset, length int64) ([]byte, error) {
	if offset >= int64(len(f.buf)) {
		return nil, nil
	}
	end := offset + length
	if end > int64(len(f.buf)) {
		end = int64(len(f.buf))
	}
	return f.buf[offset:end], nil
}

func TestFileBackedCellDecodesLittleEndian(t *testing.T) {
	r := &fakeReader{buf: []byte{0x03, 0x00, 0x00, 0x00}}
	d := mustLookup(t, "int")
	c := types.NewFileBackedCell(d, r, 0, false)
	v, err := c.Get()
	require.NoError(t, err)
	require.Equal(t, types.Int{Desc: d, V: 3}, v)
}

func TestFileBackedCellDecodesBigEndian(t *testing.T) {
	r := &fakeReader{buf: []byte{0x00, 0x02}}
	d := mustLookup(t, "uint16")
	c := types.NewFileBackedCell(d, r, 0, true)
	v, err := c.Get()
	require.NoError(t, err)
	require.Equal(t, types.Int{Desc: d, V: 2}, v)
}

func TestFileBackedCellShortReadIsEndOfBuffer(t *testing.T) {
	r := &fakeReader{buf: []byte{0x01}}
	d := mustLookup(t, "int")
	c := types.NewFileBackedCell(d, r, 0, false)
	_, err := c.Get()
	require.ErrorIs(t, err, types.ErrEndOfBuffer)
}

func TestFileBackedCellSetFails(t *testing.T) {
	r := &fakeReader{buf: []byte{0, 0, 0, 0}}
	d := mustLookup(t, "int")
	c := types.NewFileBackedCell(d, r, 0, false)
	err := c.Set(types.NewInt(1))
	require.ErrorIs(t, err, types.ErrAssignFileBacked)
}

func TestConstantCellSetFails(t *testing.T) {
	c := types.NewConstantCell(mustLookup(t, "int"), types.NewInt(1))
	require.ErrorIs(t, c.Set(types.NewInt(2)), types.ErrAssignConstant)
}

func TestMutableCellReadWrite(t *testing.T) {
	c := types.NewMutableCell(mustLookup(t, "int"), types.NewInt(1))
	require.NoError(t, c.Set(types.NewInt(9)))
	v, err := c.Get()
	require.NoError(t, err)
	require.Equal(t, types.NewInt(9), v)
}
