package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/lang/types"
)

func TestLookupAliases(t *testing.T) {
	cases := map[string]string{
		"char": "s8", "BYTE": "s8",
		"uchar": "u8", "UBYTE": "u8",
		"short": "s16le", "INT16": "s16le",
		"ushort": "u16le", "WORD": "u16le",
		"int": "s32le", "LONG": "s32le",
		"uint": "u32le", "DWORD": "u32le",
		"int64": "s64le", "__int64": "s64le",
		"uint64": "u64le", "QWORD": "u64le",
		"float": "f32le", "FLOAT": "f32le",
		"double": "f64le", "DOUBLE": "f64le",
	}
	for alias, wantLE := range cases {
		d, ok := types.Lookup(alias)
		require.Truef(t, ok, "alias %q", alias)
		le, hasCode := d.EndianCode(false)
		require.True(t, hasCode)
		require.Equal(t, wantLE, le, "alias %q", alias)
	}

	_, ok := types.Lookup("string")
	require.True(t, ok)
}

func TestLookupUnsigned(t *testing.T) {
	d, ok := types.LookupUnsigned("int")
	require.True(t, ok)
	require.False(t, d.Signed)
	require.Equal(t, 4, d.Length)
}

func TestAssignableTo(t *testing.T) {
	intD, _ := types.Lookup("int")
	floatD, _ := types.Lookup("float")
	strD, _ := types.Lookup("string")

	require.True(t, intD.AssignableTo(floatD))
	require.True(t, strD.AssignableTo(strD))
	require.False(t, intD.AssignableTo(strD))

	structD := types.NewStructDescriptor("Foo", nil, nil)
	require.False(t, structD.AssignableTo(intD))

	arrD := intD.AsArray()
	require.False(t, arrD.AssignableTo(intD))
	require.True(t, arrD.AssignableTo(floatD.AsArray()))
}

func TestEndianCode(t *testing.T) {
	u16, _ := types.Lookup("uint16")
	le, ok := u16.EndianCode(false)
	require.True(t, ok)
	require.Equal(t, "u16le", le)
	be, ok := u16.EndianCode(true)
	require.True(t, ok)
	require.Equal(t, "u16be", be)

	s8, _ := types.Lookup("char")
	le, ok = s8.EndianCode(false)
	require.True(t, ok)
	require.Equal(t, "s8", le)
}
