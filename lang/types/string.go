package types

import (
	"strconv"
	"strings"

	"github.com/mna/bintmpl/lang/token"
)

// Str is a decoded string value: a template string literal or the argument
// to a built-in like Printf. The language has no file-backed string type —
// §3 notes strings "arise only as literals and function arguments".
type Str string

var (
	_ Value     = Str("")
	_ Ordered   = Str("")
	_ HasBinary = Str("")
)

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }
func (s Str) Freeze()        {} // immutable
func (s Str) Truth() Bool    { return len(s) > 0 }

// Quoted returns the string's double-quoted, escaped source representation.
func (s Str) Quoted() string { return strconv.Quote(string(s)) }

func (s Str) Cmp(y Value, depth int) (int, error) {
	t, ok := y.(Str)
	if !ok {
		return 0, ErrTypeMismatch
	}
	return strings.Compare(string(s), string(t)), nil
}

// Binary implements '+' as string concatenation, per §4.4.4.
func (s Str) Binary(op token.Token, y Value, side Side) (Value, error) {
	t, ok := y.(Str)
	if !ok {
		return nil, nil
	}
	if op != token.PLUS {
		return nil, nil
	}
	if side == Right {
		return t + s, nil
	}
	return s + t, nil
}
