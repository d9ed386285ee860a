// Package types implements the runtime type system of the binary template
// language: type descriptors (the primitive alias table and struct/array
// composition), the decoded runtime values they describe, and the Cell
// abstraction that gives a value its storage discipline (constant, mutable,
// or lazily read from the target buffer).
package types

import "github.com/mna/bintmpl/lang/token"

// Value is the interface implemented by every decoded runtime value: the
// numeric and string literals, and the composite struct/array values built
// from them.
type Value interface {
	// String returns the value's display representation, as used by Printf's
	// %s and by diagnostic output.
	String() string

	// Type returns a short string naming the value's dynamic type, e.g.
	// "s32le", "string", "struct Header".
	Type() string

	// Freeze marks the value, and everything transitively reachable from it,
	// immutable. Struct and Array members freeze their elements; primitives
	// are already immutable.
	Freeze()

	// Truth reports the value's boolean interpretation, used by if/for/while
	// conditions and by && and ||.
	Truth() Bool
}

// An Ordered value supports the relational operators (<, <=, >, >=) and
// equality.
type Ordered interface {
	Value
	// Cmp compares the receiver to y, which must be of the same dynamic
	// type. It returns negative, zero, or positive as the receiver is less
	// than, equal to, or greater than y. depth bounds recursive comparisons
	// of composite values (structs, arrays) against cyclic data.
	Cmp(y Value, depth int) (int, error)
}

// An Indexable value supports the '[' EXPR ']' path operator for reading.
type Indexable interface {
	Value
	// Index returns the element at position i, which must satisfy
	// 0 <= i < Len().
	Index(i int) (Value, error)
	Len() int
}

// A HasSetIndex value supports the '[' EXPR ']' path operator as an
// assignment target.
type HasSetIndex interface {
	Indexable
	SetIndex(i int, v Value) error
}

// A HasBinary value may appear as either operand of a binary numeric or
// string operator. Side tells the implementation whether it is the left or
// right operand, which matters for non-commutative operators. Returning
// (nil, nil) declines the operation, letting the caller try the other
// operand or report TypeMismatch.
type HasBinary interface {
	Value
	Binary(op token.Token, y Value, side Side) (Value, error)
}

// Side indicates which operand of a binary operator a HasBinary
// implementation is acting as.
type Side bool

const (
	Left  Side = false
	Right Side = true
)

// A HasUnary value may be the operand of a unary operator ('!', '~', '-').
// Returning (nil, nil) declines the operation.
type HasUnary interface {
	Value
	Unary(op token.Token) (Value, error)
}

// A HasAttrs value supports the '.' NAME path operator for reading (struct
// member access).
type HasAttrs interface {
	Value
	// Attr returns the named member, or ErrNoSuchMember if no such member
	// exists.
	Attr(name string) (Value, error)
	// AttrNames returns the declared member names, in declaration order.
	AttrNames() []string
}

// A HasSetField value supports the '.' NAME path operator as an assignment
// target.
type HasSetField interface {
	HasAttrs
	SetField(name string, v Value) error
}
