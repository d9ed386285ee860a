package types

import (
	"strconv"

	"github.com/mna/bintmpl/lang/token"
)

// Int is a decoded fixed-width integer value: the runtime representation
// of every signed/unsigned primitive numeric type (§6's s8/u8/.../s64/u64
// aliases).
type Int struct {
	Desc *TypeDescriptor
	V    int64
}

var (
	_ Value     = Int{}
	_ Ordered   = Int{}
	_ HasBinary = Int{}
	_ HasUnary  = Int{}
)

// NewInt returns an Int value of the generic result type (s32), the
// descriptor binary/unary operators produce per §4.4.4 ("the result is int
// unless otherwise noted").
func NewInt(v int64) Int { return Int{Desc: descS32, V: v} }

func (i Int) String() string { return strconv.FormatInt(i.V, 10) }
func (i Int) Type() string   { return i.Desc.String() }
func (i Int) Freeze()        {} // immutable
func (i Int) Truth() Bool    { return i.V != 0 }

func (i Int) Cmp(y Value, depth int) (int, error) {
	j, ok := y.(Int)
	if !ok {
		return 0, ErrTypeMismatch
	}
	switch {
	case i.V < j.V:
		return -1, nil
	case i.V > j.V:
		return +1, nil
	default:
		return 0, nil
	}
}

func (i Int) Unary(op token.Token) (Value, error) {
	switch op {
	case token.MINUS:
		return NewInt(-i.V), nil
	case token.BANG:
		return boolInt(i.V == 0), nil
	case token.TILDE:
		return NewInt(^i.V), nil
	}
	return nil, nil
}

func (i Int) Binary(op token.Token, y Value, side Side) (Value, error) {
	j, ok := y.(Int)
	if !ok {
		if f, ok := y.(Float); ok {
			return Float{V: float64(i.V)}.Binary(op, f, side)
		}
		return nil, nil
	}
	x, z := i.V, j.V
	if side == Right {
		x, z = z, x
	}

	switch op {
	case token.PLUS:
		return NewInt(x + z), nil
	case token.MINUS:
		return NewInt(x - z), nil
	case token.STAR:
		return NewInt(x * z), nil
	case token.SLASH:
		if z == 0 {
			return nil, ErrDivisionByZero
		}
		return NewInt(x / z), nil
	case token.PERCENT:
		if z == 0 {
			return nil, ErrDivisionByZero
		}
		return NewInt(x % z), nil
	case token.LTLT:
		return NewInt(x << uint(z)), nil
	case token.GTGT:
		return NewInt(x >> uint(z)), nil
	case token.AMPERSAND:
		return NewInt(x & z), nil
	case token.PIPE:
		return NewInt(x | z), nil
	case token.CIRCUMFLEX:
		return NewInt(x ^ z), nil
	case token.ANDAND:
		return boolInt(x != 0 && z != 0), nil
	case token.OROR:
		return boolInt(x != 0 || z != 0), nil
	case token.LT:
		return boolInt(x < z), nil
	case token.LE:
		return boolInt(x <= z), nil
	case token.GT:
		return boolInt(x > z), nil
	case token.GE:
		return boolInt(x >= z), nil
	case token.EQL:
		return boolInt(x == z), nil
	case token.NEQ:
		return boolInt(x != z), nil
	}
	return nil, nil
}

// boolInt renders a comparison/logical result as an Int, per §4.4.4 ("0 or
// 1 (int)") — the template language has no dedicated boolean type.
func boolInt(b bool) Int {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}
