package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// builtinFunc adapts a plain Go function to the function interface, for
// the three built-ins §6 names.
type builtinFunc struct {
	name string
	fn   func(c *ExecutionContext, args []types.Value, callPos token.Pos) (types.Value, error)
}

func (b *builtinFunc) call(c *ExecutionContext, args []types.Value, callPos token.Pos) (types.Value, error) {
	return b.fn(c, args, callPos)
}

func registerBuiltins(c *ExecutionContext) {
	c.functions["BigEndian"] = &builtinFunc{name: "BigEndian", fn: builtinBigEndian}
	c.functions["LittleEndian"] = &builtinFunc{name: "LittleEndian", fn: builtinLittleEndian}
	c.functions["Printf"] = &builtinFunc{name: "Printf", fn: builtinPrintf}
}

func builtinBigEndian(c *ExecutionContext, _ []types.Value, _ token.Pos) (types.Value, error) {
	c.BigEndian = true
	return nil, nil
}

func builtinLittleEndian(c *ExecutionContext, _ []types.Value, _ token.Pos) (types.Value, error) {
	c.BigEndian = false
	return nil, nil
}

// builtinPrintf forwards a C-style formatted string to host.Print,
// supporting at minimum the specifiers §6 names: %d, %u, %x, %X, %s, %%.
func builtinPrintf(c *ExecutionContext, args []types.Value, callPos token.Pos) (types.Value, error) {
	if len(args) == 0 {
		return nil, &TypeMismatchError{Pos: c.position(callPos), Msg: "Printf requires a format string"}
	}
	format, ok := args[0].(types.Str)
	if !ok {
		return nil, &TypeMismatchError{Pos: c.position(callPos), Msg: "Printf's first argument must be a string"}
	}
	out, err := printfFormat(string(format), args[1:])
	if err != nil {
		return nil, &TypeMismatchError{Pos: c.position(callPos), Msg: err.Error()}
	}
	if err := c.Host.Print(out); err != nil {
		return nil, &TemplateAbortedError{Pos: c.position(callPos), Err: err}
	}
	return nil, nil
}

// unsignedBits masks n's value to its descriptor's byte width before a hex
// conversion, so %x/%X render the type's raw bit pattern (C/REHex
// convention) rather than Go's sign-extended decimal-to-hex of a negative
// int64. The generic result type of NewInt is s32 and is masked to 4 bytes;
// 8-byte values and descriptors whose Size is 0 are left unmasked.
func unsignedBits(n types.Int) uint64 {
	u := uint64(n.V)
	if w := n.Desc.Size(); w > 0 && w < 8 {
		u &= (uint64(1) << (uint(w) * 8)) - 1
	}
	return u
}

// printfFormat renders format against args, C-printf style, without
// involving Go's own verb set (the template language's specifiers don't
// line up with fmt's one-for-one, e.g. %u has no Go equivalent).
func printfFormat(format string, args []types.Value) (string, error) {
	var b strings.Builder
	argi := 0
	next := func(verb byte) (types.Value, error) {
		if argi >= len(args) {
			return nil, fmt.Errorf("not enough arguments for %%%c in %q", verb, format)
		}
		v := args[argi]
		argi++
		return v, nil
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i == len(format)-1 {
			b.WriteByte(ch)
			continue
		}
		i++
		spec := format[i]
		switch spec {
		case '%':
			b.WriteByte('%')
		case 'd', 'u':
			v, err := next(spec)
			if err != nil {
				return "", err
			}
			n, ok := v.(types.Int)
			if !ok {
				return "", fmt.Errorf("%%%c expects a numeric argument", spec)
			}
			b.WriteString(strconv.FormatInt(n.V, 10))
		case 'x':
			v, err := next(spec)
			if err != nil {
				return "", err
			}
			n, ok := v.(types.Int)
			if !ok {
				return "", fmt.Errorf("%%x expects a numeric argument")
			}
			b.WriteString(strconv.FormatUint(unsignedBits(n), 16))
		case 'X':
			v, err := next(spec)
			if err != nil {
				return "", err
			}
			n, ok := v.(types.Int)
			if !ok {
				return "", fmt.Errorf("%%X expects a numeric argument")
			}
			b.WriteString(strings.ToUpper(strconv.FormatUint(unsignedBits(n), 16)))
		case 's':
			v, err := next(spec)
			if err != nil {
				return "", err
			}
			b.WriteString(v.String())
		default:
			b.WriteByte('%')
			b.WriteByte(spec)
		}
	}
	return b.String(), nil
}
