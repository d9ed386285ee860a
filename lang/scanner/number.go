package scanner

import (
	"strconv"
	"strings"

	"github.com/mna/bintmpl/lang/token"
)

// number scans an integer literal: decimal, hexadecimal (0x/0X prefix),
// octal (0o/0O prefix) or binary (0b/0B prefix), optionally separated by
// '_' between digits. Floating-point literals are not part of the
// template language (§4.3: "no float-literal in scope").
func (s *Scanner) number() (tok token.Token, lit string, n int64) {
	start := s.off
	base := 10
	prefix := byte(0)

	if s.cur == '0' {
		s.advance()
		switch lower(s.cur) {
		case 'x':
			s.advance()
			base, prefix = 16, 'x'
		case 'o':
			s.advance()
			base, prefix = 8, 'o'
		case 'b':
			s.advance()
			base, prefix = 2, 'b'
		}
	}

	invalid := -1
	s.digits(base, &invalid)

	lit = string(s.src[start:s.off])
	if invalid >= 0 {
		s.errorf(invalid, "invalid digit %q in %s", s.src[invalid], litname(prefix))
	}
	if i := invalidSep(lit); i >= 0 {
		s.error(start+i, "'_' must separate successive digits")
	}

	n, err := numberToInt(lit, base)
	if err != nil {
		s.error(start, "malformed integer literal: "+err.Error())
	}
	return token.NUMBER, lit, n
}

// digits accepts a run of { digit | '_' } for the given base, recording in
// *invalid the offset of the first out-of-range digit, if any.
func (s *Scanner) digits(base int, invalid *int) {
	if base <= 10 {
		max := rune('0' + base)
		for isDigit(s.cur) || s.cur == '_' {
			if s.cur != '_' && s.cur >= max && *invalid < 0 {
				*invalid = s.off
			}
			s.advance()
		}
	} else {
		for isHexDigit(s.cur) || s.cur == '_' {
			s.advance()
		}
	}
}

// invalidSep returns the index of the first invalid '_' separator in x
// (one not flanked by digits on both sides), or -1.
func invalidSep(x string) int {
	prevDigit := false
	start := 0
	if len(x) >= 2 && x[0] == '0' {
		switch lower(rune(x[1])) {
		case 'x', 'o', 'b':
			start = 2
			prevDigit = true
		}
	}
	for i := start; i < len(x); i++ {
		if x[i] == '_' {
			if !prevDigit || i+1 >= len(x) || x[i+1] == '_' {
				return i
			}
			prevDigit = false
			continue
		}
		prevDigit = true
	}
	return -1
}

func litname(prefix byte) string {
	switch prefix {
	case 'x':
		return "hexadecimal literal"
	case 'o':
		return "octal literal"
	case 'b':
		return "binary literal"
	}
	return "decimal literal"
}

func lower(ch rune) rune { return ('a' - 'A') | ch }

func numberToInt(lit string, base int) (int64, error) {
	if base != 10 {
		lit = lit[2:] // skip 0x/0o/0b prefix
	}
	return strconv.ParseInt(strings.ReplaceAll(lit, "_", ""), base, 64)
}
