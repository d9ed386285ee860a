package ast

import (
	"fmt"

	"github.com/mna/bintmpl/lang/token"
)

func (*IfStmt) BlockEnding() bool           { return false }
func (*ForStmt) BlockEnding() bool          { return false }
func (*SwitchStmt) BlockEnding() bool       { return false }
func (*StructDefnStmt) BlockEnding() bool   { return false }
func (*EnumDefnStmt) BlockEnding() bool     { return false }
func (*TypedefStmt) BlockEnding() bool      { return false }
func (*FuncDefnStmt) BlockEnding() bool     { return false }
func (*LocalVarDefnStmt) BlockEnding() bool { return false }
func (*VarDefnStmt) BlockEnding() bool      { return false }
func (*ReturnStmt) BlockEnding() bool       { return true }
func (*BreakStmt) BlockEnding() bool        { return true }
func (*ContinueStmt) BlockEnding() bool     { return true }
func (*ExprStmt) BlockEnding() bool         { return false }
func (*EmptyStmt) BlockEnding() bool        { return false }
func (*BadStmt) BlockEnding() bool          { return false }

// IfStmt is an "if (COND) THEN (else ELSE)?" statement. Else is nil, a
// *Block, or (for an "else if" chain) another *IfStmt.
type IfStmt struct {
	If   token.Pos
	Cond Expr
	Then *Block
	Else Stmt
}

func (n *IfStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfStmt) Span() (start, end token.Pos) {
	end = n.Then.End
	if n.Else != nil {
		_, end = n.Else.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// ForStmt is a C-style "for (INIT; COND; POST) BODY" loop. A "while (COND)
// BODY" statement is lowered to ForStmt with Init and Post nil, per the
// language's grammar.
type ForStmt struct {
	For  token.Pos
	Init Stmt // nil if absent
	Cond Expr // nil if absent ("for (;;)")
	Post Stmt // nil if absent
	Body *Block
}

func (n *ForStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "for", nil) }
func (n *ForStmt) Span() (start, end token.Pos)  { return n.For, n.Body.End }
func (n *ForStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Post != nil {
		Walk(v, n.Post)
	}
	Walk(v, n.Body)
}

// SwitchStmt is a "switch (TAG) { CASE* }" statement.
type SwitchStmt struct {
	Switch token.Pos
	Tag    Expr
	Cases  []*CaseClause
	End    token.Pos
}

func (n *SwitchStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "switch", map[string]int{"cases": len(n.Cases)})
}
func (n *SwitchStmt) Span() (start, end token.Pos) { return n.Switch, n.End }
func (n *SwitchStmt) Walk(v Visitor) {
	Walk(v, n.Tag)
	for _, c := range n.Cases {
		Walk(v, c)
	}
}

// StructDefnStmt declares a struct type, covering every grammar variant:
// anonymous or named ("struct NAME { ... }"), a typedef ("typedef struct
// { ... } NAME"), and optional direct instantiation ("struct NAME { ... }
// instName(args)[len];").
type StructDefnStmt struct {
	Struct token.Pos
	// Tag is the struct's tag name, empty for an anonymous struct declared
	// only to be typedef'd or directly instantiated.
	Tag string
	// Params are the struct's own constructor parameters, e.g.
	// "struct Foo(int n) { ... }"; nil if none were declared.
	Params []*Param
	Body   *Block

	// Typedef is set when this declaration is also "typedef"'d; TypedefName
	// is the alias introduced.
	Typedef     bool
	TypedefName string

	// InstName, non-empty, requests direct instantiation of a variable of
	// this struct type ("struct NAME { ... } instName;"). InstArgs holds
	// constructor-call arguments, and ArrayLen is non-nil for an array
	// instantiation ("instName[LEN]").
	InstName string
	InstArgs []Expr
	ArrayLen Expr

	End token.Pos
}

func (n *StructDefnStmt) Format(f fmt.State, verb rune) {
	lbl := "struct"
	if n.Tag != "" {
		lbl += " " + n.Tag
	}
	format(f, verb, n, lbl, map[string]int{"members": len(n.Body.Stmts)})
}
func (n *StructDefnStmt) Span() (start, end token.Pos) { return n.Struct, n.End }
func (n *StructDefnStmt) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
	for _, a := range n.InstArgs {
		Walk(v, a)
	}
	if n.ArrayLen != nil {
		Walk(v, n.ArrayLen)
	}
}

// EnumDefnStmt declares an enum type: "enum <UNDERLYING> NAME { MEMBER* }",
// optionally typedef'd.
type EnumDefnStmt struct {
	Enum token.Pos
	// Underlying is the enum's backing integer type, nil if omitted (in
	// which case the interpreter defaults it per the language's type
	// rules).
	Underlying *TypeExpr
	Tag        string
	Members    []*EnumMember

	Typedef     bool
	TypedefName string

	End token.Pos
}

func (n *EnumDefnStmt) Format(f fmt.State, verb rune) {
	lbl := "enum"
	if n.Tag != "" {
		lbl += " " + n.Tag
	}
	format(f, verb, n, lbl, map[string]int{"members": len(n.Members)})
}
func (n *EnumDefnStmt) Span() (start, end token.Pos) { return n.Enum, n.End }
func (n *EnumDefnStmt) Walk(v Visitor) {
	if n.Underlying != nil {
		Walk(v, n.Underlying)
	}
	for _, m := range n.Members {
		Walk(v, m)
	}
}

// TypedefStmt declares a plain type alias: "typedef TYPE NAME;".
type TypedefStmt struct {
	Typedef token.Pos
	Type    *TypeExpr
	Name    string
	Pos     token.Pos // position of Name
	End     token.Pos
}

func (n *TypedefStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "typedef "+n.Name, nil) }
func (n *TypedefStmt) Span() (start, end token.Pos)  { return n.Typedef, n.End }
func (n *TypedefStmt) Walk(v Visitor)                { Walk(v, n.Type) }

// FuncDefnStmt declares a user function: "RETTYPE NAME(PARAMS) { BODY }".
type FuncDefnStmt struct {
	Start      token.Pos
	ReturnType *TypeExpr
	Name       string
	Pos        token.Pos // position of Name
	Params     []*Param
	Body       *Block
}

func (n *FuncDefnStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "func "+n.Name, map[string]int{"params": len(n.Params)})
}
func (n *FuncDefnStmt) Span() (start, end token.Pos) { return n.Start, n.Body.End }
func (n *FuncDefnStmt) Walk(v Visitor) {
	Walk(v, n.ReturnType)
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}

// LocalVarDefnStmt declares a local variable not backed by the file
// buffer: "local TYPE NAME (= INIT)?;" or "local TYPE NAME[LEN];".
type LocalVarDefnStmt struct {
	Local    token.Pos
	Type     *TypeExpr
	Name     string
	Pos      token.Pos // position of Name
	Args     []Expr     // non-nil for "local TYPE NAME(ARGS)"
	ArrayLen Expr        // non-nil for "local TYPE NAME[LEN]"
	Init     Expr        // non-nil for "= INIT"
	End      token.Pos
}

func (n *LocalVarDefnStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "local-var "+n.Name, nil)
}
func (n *LocalVarDefnStmt) Span() (start, end token.Pos) { return n.Local, n.End }
func (n *LocalVarDefnStmt) Walk(v Visitor) {
	Walk(v, n.Type)
	for _, a := range n.Args {
		Walk(v, a)
	}
	if n.ArrayLen != nil {
		Walk(v, n.ArrayLen)
	}
	if n.Init != nil {
		Walk(v, n.Init)
	}
}

// VarDefnStmt declares a variable bound to the next bytes of the file
// buffer: "TYPE NAME;", "TYPE NAME[LEN];" or "TYPE NAME(ARGS);" for a
// struct with constructor arguments.
type VarDefnStmt struct {
	Type     *TypeExpr
	Name     string
	Pos      token.Pos // position of Name
	ArrayLen Expr       // non-nil for "TYPE NAME[LEN]"
	Args     []Expr     // non-nil for "TYPE NAME(ARGS)"
	End      token.Pos
}

func (n *VarDefnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "var "+n.Name, nil) }
func (n *VarDefnStmt) Span() (start, end token.Pos) {
	start, _ = n.Type.Span()
	return start, n.End
}
func (n *VarDefnStmt) Walk(v Visitor) {
	Walk(v, n.Type)
	if n.ArrayLen != nil {
		Walk(v, n.ArrayLen)
	}
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// ReturnStmt is a "return (EXPR)?;" statement.
type ReturnStmt struct {
	Return token.Pos
	Value  Expr // nil for a bare "return;"
	End    token.Pos
}

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (start, end token.Pos)  { return n.Return, n.End }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// BreakStmt is a "break;" statement.
type BreakStmt struct {
	Start, End token.Pos
}

func (n *BreakStmt) Format(f fmt.State, verb rune)     { format(f, verb, n, "break", nil) }
func (n *BreakStmt) Span() (start, end token.Pos)      { return n.Start, n.End }
func (n *BreakStmt) Walk(_ Visitor)                    {}

// ContinueStmt is a "continue;" statement.
type ContinueStmt struct {
	Start, End token.Pos
}

func (n *ContinueStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "continue", nil) }
func (n *ContinueStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *ContinueStmt) Walk(_ Visitor)                {}

// ExprStmt is an expression evaluated for its side effects (typically a
// call or an assignment), terminated by ';'.
type ExprStmt struct {
	X   Expr
	End token.Pos
}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr-stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos) {
	start, _ = n.X.Span()
	return start, n.End
}
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }

// EmptyStmt is a bare ';' with no content.
type EmptyStmt struct {
	Pos token.Pos
}

func (n *EmptyStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "empty-stmt", nil) }
func (n *EmptyStmt) Span() (start, end token.Pos)  { return n.Pos, n.Pos + 1 }
func (n *EmptyStmt) Walk(_ Visitor)                {}

// BadStmt is a placeholder for a syntactically invalid statement, allowing
// the parser to recover and continue after an error.
type BadStmt struct {
	Start, End token.Pos
}

func (n *BadStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "bad-stmt", nil) }
func (n *BadStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadStmt) Walk(_ Visitor)                {}
