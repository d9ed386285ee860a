package interp

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// evalExpr implements §4.4.4: every expression node evaluates to a
// (TypeDescriptor, Value) pair, here collapsed to just the Value since
// every concrete types.Value already carries or can report its own type
// via Type().
func (c *ExecutionContext) evalExpr(e ast.Expr) (types.Value, error) {
	switch n := e.(type) {
	case *ast.NumberExpr:
		return types.NewInt(n.Value), nil

	case *ast.StringExpr:
		return types.Str(n.Value), nil

	case *ast.IdentExpr, *ast.DotExpr, *ast.IndexExpr:
		cell, pos, err := c.resolveCell(e)
		if err != nil {
			return nil, err
		}
		v, err := cell.Get()
		if err != nil {
			return nil, c.wrapValueErr(pos, err)
		}
		return v, nil

	case *ast.ParenExpr:
		return c.evalExpr(n.X)

	case *ast.CastExpr:
		// Casts are syntactic only (§4.3: "accepted syntactically and
		// discarded"); evaluate the operand as-is.
		return c.evalExpr(n.X)

	case *ast.UnaryExpr:
		return c.evalUnary(n)

	case *ast.BinaryExpr:
		return c.evalBinary(n)

	case *ast.CondExpr:
		return c.evalCond(n)

	case *ast.AssignExpr:
		return c.evalAssign(n)

	case *ast.CallExpr:
		return c.evalCall(n)

	case *ast.BadExpr:
		start, _ := n.Span()
		return nil, &InternalError{Pos: c.position(start), Msg: "evaluated a bad expression"}
	}
	start, _ := e.Span()
	return nil, &InternalError{Pos: c.position(start), Msg: "unhandled expression node"}
}

func (c *ExecutionContext) evalUnary(n *ast.UnaryExpr) (types.Value, error) {
	x, err := c.evalExpr(n.X)
	if err != nil {
		return nil, err
	}
	hu, ok := x.(types.HasUnary)
	if !ok {
		return nil, &TypeMismatchError{Pos: c.position(n.OpPos), Msg: "operand does not support " + n.Op.String()}
	}
	v, err := hu.Unary(n.Op)
	if err != nil {
		return nil, c.wrapValueErr(n.OpPos, err)
	}
	if v == nil {
		return nil, &TypeMismatchError{Pos: c.position(n.OpPos), Msg: "operand does not support " + n.Op.String()}
	}
	return v, nil
}

func (c *ExecutionContext) evalBinary(n *ast.BinaryExpr) (types.Value, error) {
	// && and || short-circuit (§4.4.4: "right operand is not evaluated
	// when the result is already determined by the left").
	if n.Op == token.ANDAND || n.Op == token.OROR {
		left, err := c.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		leftTrue, err := c.numericTruth(n.OpPos, left)
		if err != nil {
			return nil, err
		}
		if n.Op == token.ANDAND && !leftTrue {
			return types.NewInt(0), nil
		}
		if n.Op == token.OROR && leftTrue {
			return types.NewInt(1), nil
		}
		right, err := c.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		rightTrue, err := c.numericTruth(n.OpPos, right)
		if err != nil {
			return nil, err
		}
		if rightTrue {
			return types.NewInt(1), nil
		}
		return types.NewInt(0), nil
	}

	left, err := c.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}

	hb, ok := left.(types.HasBinary)
	if !ok {
		if hb, ok = right.(types.HasBinary); ok {
			v, err := hb.Binary(n.Op, left, types.Right)
			if err != nil {
				return nil, c.wrapValueErr(n.OpPos, err)
			}
			if v == nil {
				return nil, &TypeMismatchError{Pos: c.position(n.OpPos), Msg: "incompatible operand types for " + n.Op.String()}
			}
			return v, nil
		}
		return nil, &TypeMismatchError{Pos: c.position(n.OpPos), Msg: "operand does not support " + n.Op.String()}
	}
	v, err := hb.Binary(n.Op, right, types.Left)
	if err != nil {
		return nil, c.wrapValueErr(n.OpPos, err)
	}
	if v == nil {
		return nil, &TypeMismatchError{Pos: c.position(n.OpPos), Msg: "incompatible operand types for " + n.Op.String()}
	}
	return v, nil
}

// numericTruth implements the "condition must have numeric base" rule
// shared by if/for/the ternary/&&/|| (§4.4.3, §4.4.4).
func (c *ExecutionContext) numericTruth(pos token.Pos, v types.Value) (bool, error) {
	switch v.(type) {
	case types.Int, types.Float:
		return v.Truth() == types.True, nil
	default:
		return false, &TypeMismatchError{Pos: c.position(pos), Msg: "condition must be numeric"}
	}
}

func (c *ExecutionContext) evalCond(n *ast.CondExpr) (types.Value, error) {
	cond, err := c.evalExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	truth, err := c.numericTruth(n.Question, cond)
	if err != nil {
		return nil, err
	}
	if truth {
		return c.evalExpr(n.Then)
	}
	return c.evalExpr(n.Else)
}

func (c *ExecutionContext) evalAssign(n *ast.AssignExpr) (types.Value, error) {
	if !ast.IsAssignable(ast.Unwrap(n.Left)) {
		start, _ := n.Left.Span()
		return nil, &TypeMismatchError{Pos: c.position(start), Msg: "left side of assignment is not assignable"}
	}
	cell, pos, err := c.resolveCell(n.Left)
	if err != nil {
		return nil, err
	}
	v, err := c.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if err := cell.Set(v); err != nil {
		return nil, c.wrapValueErr(pos, err)
	}
	return v, nil
}

func (c *ExecutionContext) evalCall(n *ast.CallExpr) (types.Value, error) {
	ident, ok := ast.Unwrap(n.Fn).(*ast.IdentExpr)
	if !ok {
		start, _ := n.Fn.Span()
		return nil, &TypeMismatchError{Pos: c.position(start), Msg: "call target is not a function name"}
	}
	fn, ok := c.lookupFunction(ident.Name)
	if !ok {
		return nil, &UndefinedFunctionError{Pos: c.position(ident.Pos), Name: ident.Name}
	}
	args := make([]types.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := c.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.call(c, args, ident.Pos)
}

// resolveCell implements §4.4.4's path dereferencing for IdentExpr/
// DotExpr/IndexExpr, returning the storage cell the path designates
// (rather than its decoded value) so that both reads (evalExpr) and
// assignment (evalAssign) share one walk.
func (c *ExecutionContext) resolveCell(e ast.Expr) (types.Cell, token.Pos, error) {
	switch n := e.(type) {
	case *ast.IdentExpr:
		b, ok := c.lookupVar(n.Name)
		if !ok {
			return nil, 0, &UndefinedVariableError{Pos: c.position(n.Pos), Name: n.Name}
		}
		return b.cell, n.Pos, nil

	case *ast.DotExpr:
		baseCell, _, err := c.resolveCell(n.Left)
		if err != nil {
			return nil, 0, err
		}
		baseVal, err := baseCell.Get()
		if err != nil {
			leftStart, _ := n.Left.Span()
			return nil, 0, c.wrapValueErr(leftStart, err)
		}
		s, ok := baseVal.(*types.Struct)
		if !ok {
			return nil, 0, &TypeMismatchError{Pos: c.position(n.Pos), Msg: "'.' requires a struct operand"}
		}
		memberCell, ok := s.Cell(n.Name)
		if !ok {
			return nil, 0, &UndefinedMemberError{Pos: c.position(n.Pos), Name: n.Name}
		}
		return memberCell, n.Pos, nil

	case *ast.IndexExpr:
		baseCell, _, err := c.resolveCell(n.Left)
		if err != nil {
			return nil, 0, err
		}
		baseVal, err := baseCell.Get()
		if err != nil {
			leftStart, _ := n.Left.Span()
			return nil, 0, c.wrapValueErr(leftStart, err)
		}
		arr, ok := baseVal.(*types.Array)
		if !ok {
			return nil, 0, &TypeMismatchError{Pos: c.position(n.Lbrack), Msg: "'[]' requires an array operand"}
		}
		idxVal, err := c.evalExpr(n.Index)
		if err != nil {
			return nil, 0, err
		}
		idx, ok := idxVal.(types.Int)
		if !ok {
			return nil, 0, &TypeMismatchError{Pos: c.position(n.Lbrack), Msg: "array index must be numeric"}
		}
		if idx.V < 0 || idx.V >= int64(len(arr.Elems)) {
			return nil, 0, &OutOfRangeIndexError{Pos: c.position(n.Lbrack), Index: idx.V}
		}
		return arr.Elems[idx.V], n.Lbrack, nil
	}
	start, _ := e.Span()
	return nil, 0, &InternalError{Pos: c.position(start), Msg: "resolveCell called on a non-path expression"}
}
