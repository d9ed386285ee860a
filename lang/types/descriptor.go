package types

import (
	"fmt"

	"github.com/mna/bintmpl/lang/ast"
)

// Base identifies the broad category a TypeDescriptor belongs to.
type Base int

const (
	// Number is a fixed-width signed/unsigned integer or IEEE-754 float.
	Number Base = iota
	// String is the unsized text literal type; it only arises from string
	// literals and function arguments, never from a buffer-bound
	// declaration.
	String
	// Struct is a user-defined struct type.
	Struct
	// Void is the absent return type of a function declared without one.
	Void
)

// Kind distinguishes integer from floating-point Number descriptors.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
)

// TypeDescriptor describes a template-language type: a primitive numeric
// encoding, the unsized string type, a user struct, or any of those wrapped
// as an array.
type TypeDescriptor struct {
	Base   Base
	Length int  // byte size of one element; 0 for String and Void
	Signed bool // only meaningful for Base == Number && Kind == IntKind
	Kind   Kind

	// EndianCodes holds the little-endian and big-endian encoding names
	// passed to the host's set_data_type, in that order. Empty for Base !=
	// Number.
	EndianCodes [2]string

	// StructName is the tag this descriptor was declared or typedef'd
	// under; StructBody is the member declarations executed to populate an
	// instance. Both are empty/nil unless Base == Struct.
	StructName string
	StructBody *ast.Block
	// StructParams are the struct's own constructor parameters, bound as
	// local variables inside StructBody when the struct is instantiated
	// with arguments.
	StructParams []*ast.Param

	// IsArray marks this descriptor as describing an array of the
	// otherwise-identical element type; the array's own element count is
	// carried by the declaration, not the type itself.
	IsArray bool
}

// Size returns the byte size of one element of the type, which is 0 for
// String, Void, and Struct (a struct's size is only known once its body has
// executed).
func (d *TypeDescriptor) Size() int {
	if d.Base != Number {
		return 0
	}
	return d.Length
}

// EndianCode returns the encoding name to pass to the host's
// set_data_type for this descriptor and the given endianness, and whether
// one applies (structs and strings have none).
func (d *TypeDescriptor) EndianCode(bigEndian bool) (string, bool) {
	if d.Base != Number {
		return "", false
	}
	if bigEndian {
		return d.EndianCodes[1], true
	}
	return d.EndianCodes[0], true
}

// AsArray returns a copy of d with IsArray set, used when a declaration
// names an array of an otherwise plain type.
func (d *TypeDescriptor) AsArray() *TypeDescriptor {
	cp := *d
	cp.IsArray = true
	return &cp
}

// AssignableTo implements §4.4.5: a value of type d is assignable to dst
// iff both are primitive numeric agreeing on array-ness, both are String,
// or both are Void. Structs are never assignable.
func (d *TypeDescriptor) AssignableTo(dst *TypeDescriptor) bool {
	if d.IsArray != dst.IsArray {
		return false
	}
	switch {
	case d.Base == Number && dst.Base == Number:
		return true
	case d.Base == String && dst.Base == String:
		return true
	case d.Base == Void && dst.Base == Void:
		return true
	default:
		return false
	}
}

func primitive(length int, signed bool, kind Kind, le, be string) *TypeDescriptor {
	return &TypeDescriptor{Base: Number, Length: length, Signed: signed, Kind: kind, EndianCodes: [2]string{le, be}}
}

// canonical primitive descriptors, named after the endian codes of §6.
var (
	descS8  = primitive(1, true, IntKind, "s8", "s8")
	descU8  = primitive(1, false, IntKind, "u8", "u8")
	descS16 = primitive(2, true, IntKind, "s16le", "s16be")
	descU16 = primitive(2, false, IntKind, "u16le", "u16be")
	descS32 = primitive(4, true, IntKind, "s32le", "s32be")
	descU32 = primitive(4, false, IntKind, "u32le", "u32be")
	descS64 = primitive(8, true, IntKind, "s64le", "s64be")
	descU64 = primitive(8, false, IntKind, "u64le", "u64be")
	descF32 = primitive(4, false, FloatKind, "f32le", "f32be")
	descF64 = primitive(8, false, FloatKind, "f64le", "f64be")
	descStr = &TypeDescriptor{Base: String}
)

// aliases is the fixed primitive alias table of §6: every recognized type
// identifier, mapped to its canonical descriptor.
var aliases = map[string]*TypeDescriptor{
	"char": descS8, "byte": descS8, "CHAR": descS8, "BYTE": descS8,
	"uchar": descU8, "ubyte": descU8, "UCHAR": descU8, "UBYTE": descU8,
	"short": descS16, "int16": descS16, "SHORT": descS16, "INT16": descS16,
	"ushort": descU16, "uint16": descU16, "USHORT": descU16, "UINT16": descU16, "WORD": descU16,
	"int": descS32, "int32": descS32, "long": descS32, "INT": descS32, "INT32": descS32, "LONG": descS32,
	"uint": descU32, "uint32": descU32, "ulong": descU32, "UINT": descU32, "UINT32": descU32, "ULONG": descU32, "DWORD": descU32,
	"int64": descS64, "quad": descS64, "QUAD": descS64, "INT64": descS64, "__int64": descS64,
	"uint64": descU64, "uquad": descU64, "UQUAD": descU64, "UINT64": descU64, "QWORD": descU64, "__uint64": descU64,
	"float": descF32, "FLOAT": descF32,
	"double": descF64, "DOUBLE": descF64,
	"string": descStr,
}

// unsignedAliases maps the bare word following an "unsigned" keyword (e.g.
// "unsigned int") to its unsigned descriptor, independent of the signed
// alias the bare word would otherwise resolve to.
var unsignedAliases = map[string]*TypeDescriptor{
	"char": descU8, "short": descU16, "int": descU32, "int32": descU32,
	"long": descU32, "int64": descU64, "quad": descU64,
}

// Lookup resolves a plain (non-struct, non-enum, non-unsigned-prefixed)
// type identifier to its descriptor, per the alias table of §6.
func Lookup(name string) (*TypeDescriptor, bool) {
	d, ok := aliases[name]
	return d, ok
}

// LookupUnsigned resolves the bare word following an "unsigned" keyword.
func LookupUnsigned(name string) (*TypeDescriptor, bool) {
	d, ok := unsignedAliases[name]
	return d, ok
}

// NewStructDescriptor builds the descriptor for a user struct declaration.
func NewStructDescriptor(name string, params []*ast.Param, body *ast.Block) *TypeDescriptor {
	return &TypeDescriptor{Base: Struct, StructName: name, StructBody: body, StructParams: params}
}

func (d *TypeDescriptor) String() string {
	switch d.Base {
	case String:
		return "string"
	case Struct:
		return fmt.Sprintf("struct %s", d.StructName)
	case Void:
		return "void"
	default:
		le, _ := d.EndianCode(false)
		return le
	}
}
