package types

import (
	"fmt"

	"github.com/mna/bintmpl/lang/token"
)

// Float is a decoded f32/f64 value.
type Float struct {
	Desc *TypeDescriptor
	V    float64
}

var (
	_ Value     = Float{}
	_ Ordered   = Float{}
	_ HasBinary = Float{}
	_ HasUnary  = Float{}
)

func (f Float) String() string { return fmt.Sprintf("%g", f.V) }
func (f Float) Type() string   { return f.Desc.String() }
func (f Float) Freeze()        {} // immutable
func (f Float) Truth() Bool    { return f.V != 0 }

func (f Float) Cmp(y Value, depth int) (int, error) {
	g, ok := y.(Float)
	if !ok {
		return 0, ErrTypeMismatch
	}
	switch {
	case f.V < g.V:
		return -1, nil
	case f.V > g.V:
		return +1, nil
	default:
		return 0, nil
	}
}

func (f Float) Unary(op token.Token) (Value, error) {
	switch op {
	case token.MINUS:
		return Float{Desc: f.Desc, V: -f.V}, nil
	case token.BANG:
		return boolInt(f.V == 0), nil
	}
	return nil, nil
}

func (f Float) Binary(op token.Token, y Value, side Side) (Value, error) {
	var g float64
	switch v := y.(type) {
	case Float:
		g = v.V
	case Int:
		g = float64(v.V)
	default:
		return nil, nil
	}
	x, z := f.V, g
	if side == Right {
		x, z = z, x
	}

	switch op {
	case token.PLUS:
		return Float{Desc: f.Desc, V: x + z}, nil
	case token.MINUS:
		return Float{Desc: f.Desc, V: x - z}, nil
	case token.STAR:
		return Float{Desc: f.Desc, V: x * z}, nil
	case token.SLASH:
		if z == 0 {
			return nil, ErrDivisionByZero
		}
		return Float{Desc: f.Desc, V: x / z}, nil
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
	case token.ANDAND:
		return boolInt(x != 0 && z != 0), nil
	case token.OROR:
		return boolInt(x != 0 || z != 0), nil
	}
	return nil, ErrTypeMismatch
}
