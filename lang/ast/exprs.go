package ast

import (
	"fmt"

	"github.com/mna/bintmpl/lang/token"
)

func (*IdentExpr) expr()  {}
func (*DotExpr) expr()    {}
func (*IndexExpr) expr()  {}
func (*NumberExpr) expr() {}
func (*StringExpr) expr() {}
func (*CallExpr) expr()   {}
func (*CastExpr) expr()   {}
func (*ParenExpr) expr()  {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*AssignExpr) expr() {}
func (*CondExpr) expr()   {}
func (*BadExpr) expr()    {}

// IdentExpr is a bare identifier reference, the leaf of every variable
// path expression (NAME (.NAME | [EXPR])*).
type IdentExpr struct {
	Name string
	Pos  token.Pos
}

func (n *IdentExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "ident "+n.Name, nil) }
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Pos, n.Pos + token.Pos(len(n.Name))
}
func (n *IdentExpr) Walk(_ Visitor) {}

// DotExpr is a struct member access "LEFT.NAME".
type DotExpr struct {
	Left Expr
	Dot  token.Pos
	Name string
	Pos  token.Pos // position of Name
}

func (n *DotExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "dot ."+n.Name, nil) }
func (n *DotExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	return start, n.Pos + token.Pos(len(n.Name))
}
func (n *DotExpr) Walk(v Visitor) { Walk(v, n.Left) }

// IndexExpr is an array index expression "LEFT[INDEX]".
type IndexExpr struct {
	Left   Expr
	Lbrack token.Pos
	Index  Expr
	Rbrack token.Pos
}

func (n *IndexExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "index", nil) }
func (n *IndexExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	return start, n.Rbrack + 1
}
func (n *IndexExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Index)
}

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int64
	Raw   string
	Pos   token.Pos
}

func (n *NumberExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "number "+n.Raw, nil) }
func (n *NumberExpr) Span() (start, end token.Pos) {
	return n.Pos, n.Pos + token.Pos(len(n.Raw))
}
func (n *NumberExpr) Walk(_ Visitor) {}

// StringExpr is a string literal.
type StringExpr struct {
	Value string
	Raw   string
	Pos   token.Pos
}

func (n *StringExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "string "+n.Raw, nil) }
func (n *StringExpr) Span() (start, end token.Pos) {
	return n.Pos, n.Pos + token.Pos(len(n.Raw))
}
func (n *StringExpr) Walk(_ Visitor) {}

// CallExpr is a function call "FN(ARGS...)".
type CallExpr struct {
	Fn     Expr
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + 1
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// CastExpr is a parenthesized-type cast "(TYPE)X". The cast is
// syntactic-only: evaluating it yields the value of X unchanged.
type CastExpr struct {
	Lparen token.Pos
	Type   *TypeExpr
	Rparen token.Pos
	X      Expr
}

func (n *CastExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "cast", nil) }
func (n *CastExpr) Span() (start, end token.Pos) {
	_, end = n.X.Span()
	return n.Lparen, end
}
func (n *CastExpr) Walk(v Visitor) {
	Walk(v, n.Type)
	Walk(v, n.X)
}

// ParenExpr is a parenthesized expression "(X)", kept in the tree so
// positions and re-printing remain faithful to the source.
type ParenExpr struct {
	Lparen token.Pos
	X      Expr
	Rparen token.Pos
}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "paren", nil) }
func (n *ParenExpr) Span() (start, end token.Pos)  { return n.Lparen, n.Rparen + 1 }
func (n *ParenExpr) Walk(v Visitor)                { Walk(v, n.X) }

// UnaryExpr is a prefix unary expression: "!X", "~X" or "-X".
type UnaryExpr struct {
	Op    token.Token
	OpPos token.Pos
	X     Expr
}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.String(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.X.Span()
	return n.OpPos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.X) }

// BinaryExpr is a binary operator expression "LEFT OP RIGHT", already
// folded to respect operator precedence.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.String(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// CondExpr is a ternary conditional expression "COND ? THEN : ELSE".
type CondExpr struct {
	Cond     Expr
	Question token.Pos
	Then     Expr
	Colon    token.Pos
	Else     Expr
}

func (n *CondExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "cond", nil) }
func (n *CondExpr) Span() (start, end token.Pos) {
	start, _ = n.Cond.Span()
	_, end = n.Else.Span()
	return start, end
}
func (n *CondExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	Walk(v, n.Else)
}

// AssignExpr is an assignment expression "LEFT = RIGHT". Left must be an
// assignable path expression (IdentExpr, DotExpr or IndexExpr).
type AssignExpr struct {
	Left  Expr
	OpPos token.Pos
	Right Expr
}

func (n *AssignExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "assign", nil) }
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// BadExpr is a placeholder for a syntactically invalid expression, used so
// the parser can keep going after an error and still produce a tree.
type BadExpr struct {
	Start, End token.Pos
}

func (n *BadExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "bad-expr", nil) }
func (n *BadExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadExpr) Walk(_ Visitor)                {}

// IsAssignable reports whether e is a valid assignment target: an
// identifier, a struct member access, or an array index, possibly chained.
func IsAssignable(e Expr) bool {
	switch e.(type) {
	case *IdentExpr, *DotExpr, *IndexExpr:
		return true
	default:
		return false
	}
}

// Unwrap strips any number of enclosing ParenExpr layers and returns the
// innermost expression.
func Unwrap(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
