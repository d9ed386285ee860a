package ast

import (
	"fmt"

	"github.com/mna/bintmpl/lang/token"
)

// TypeExpr represents a TYPE production: a plain identifier, or an
// identifier prefixed by "struct", "enum" or "unsigned".
type TypeExpr struct {
	Start token.Pos
	// Keyword is STRUCT, ENUM, UNSIGNED, or ILLEGAL for a plain type name.
	Keyword token.Token
	// Name is the type identifier (the struct/enum tag, or the type name
	// itself for a plain or "unsigned"-prefixed type).
	Name string
	End  token.Pos
}

func (n *TypeExpr) Format(f fmt.State, verb rune) {
	lbl := n.Name
	if n.Keyword != token.ILLEGAL {
		lbl = n.Keyword.String() + " " + lbl
	}
	format(f, verb, n, "type "+lbl, nil)
}
func (n *TypeExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *TypeExpr) Walk(_ Visitor)               {}

// Param represents one parameter in a struct or function parameter list:
// "TYPE NAME".
type Param struct {
	Type *TypeExpr
	Name string
	Pos  token.Pos // position of Name
}

func (n *Param) Format(f fmt.State, verb rune) {
	format(f, verb, n, "param "+n.Name, nil)
}
func (n *Param) Span() (start, end token.Pos) {
	s, _ := n.Type.Span()
	return s, n.Pos + token.Pos(len(n.Name))
}
func (n *Param) Walk(v Visitor) { Walk(v, n.Type) }

// EnumMember represents one "NAME (= expr)?" entry of an enum body.
type EnumMember struct {
	Name  string
	Pos   token.Pos
	Value Expr // nil if no explicit value
}

func (n *EnumMember) Format(f fmt.State, verb rune) {
	format(f, verb, n, "enum-member "+n.Name, nil)
}
func (n *EnumMember) Span() (start, end token.Pos) {
	end = n.Pos + token.Pos(len(n.Name))
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.Pos, end
}
func (n *EnumMember) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// CaseClause represents one "case EXPR: STMT*" or "default: STMT*" arm of a
// switch statement. Values is empty for the default arm.
type CaseClause struct {
	Start  token.Pos
	Values []Expr // empty means this is the "default" arm
	Colon  token.Pos
	Stmts  []Stmt
	End    token.Pos
}

func (n *CaseClause) Format(f fmt.State, verb rune) {
	lbl := "case"
	if len(n.Values) == 0 {
		lbl = "default"
	}
	format(f, verb, n, lbl, map[string]int{"stmts": len(n.Stmts)})
}
func (n *CaseClause) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *CaseClause) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
