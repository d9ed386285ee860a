package interp

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/types"
)

// execBlock runs every statement of b in turn, stopping at the first
// error or the first non-nil flowSignal a statement produces (§4.4.3).
// The caller is responsible for pushing whatever frame b's statements
// should execute against.
func (c *ExecutionContext) execBlock(b *ast.Block) (*flowSignal, error) {
	for _, s := range b.Stmts {
		sig, err := c.execStmt(s)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

// runScopedBlock pushes frame, executes b, pops frame, and resolves
// whatever flowSignal surfaced against frame's Handles/Blocks masks.
func (c *ExecutionContext) runScopedBlock(frame *Frame, b *ast.Block) (*flowSignal, error) {
	c.pushFrame(frame)
	sig, err := c.execBlock(b)
	c.popFrame()
	if err != nil {
		return nil, err
	}
	consumed, ferr := frame.resolveFlow(c, sig)
	if ferr != nil {
		return nil, ferr
	}
	if consumed {
		return nil, nil
	}
	return sig, nil
}

func (c *ExecutionContext) execStmt(s ast.Stmt) (*flowSignal, error) {
	start, _ := s.Span()
	if err := c.yield(start); err != nil {
		return nil, err
	}

	switch n := s.(type) {
	case *ast.VarDefnStmt:
		return nil, c.execVarDefn(n)
	case *ast.LocalVarDefnStmt:
		return nil, c.execLocalVarDefn(n)
	case *ast.StructDefnStmt:
		return nil, c.execStructDefn(n)
	case *ast.EnumDefnStmt:
		return nil, c.execEnumDefn(n)
	case *ast.TypedefStmt:
		return nil, c.execTypedef(n)
	case *ast.FuncDefnStmt:
		return nil, c.execFuncDefn(n)
	case *ast.ExprStmt:
		_, err := c.evalExpr(n.X)
		return nil, err
	case *ast.EmptyStmt:
		return nil, nil
	case *ast.IfStmt:
		return c.execIf(n)
	case *ast.ForStmt:
		return c.execFor(n)
	case *ast.SwitchStmt:
		return c.execSwitch(n)
	case *ast.ReturnStmt:
		var v types.Value
		if n.Value != nil {
			val, err := c.evalExpr(n.Value)
			if err != nil {
				return nil, err
			}
			v = val
		}
		return &flowSignal{kind: FlowReturn, value: v, pos: n.Return}, nil
	case *ast.BreakStmt:
		return &flowSignal{kind: FlowBreak, pos: n.Start}, nil
	case *ast.ContinueStmt:
		return &flowSignal{kind: FlowContinue, pos: n.Start}, nil
	case *ast.Block:
		return c.runScopedBlock(newFrame(FrameScope), n)
	case *ast.BadStmt:
		return nil, &InternalError{Pos: c.position(n.Start), Msg: "executed a bad statement"}
	}
	return nil, &InternalError{Pos: c.position(start), Msg: "unhandled statement node"}
}

func (c *ExecutionContext) execIf(n *ast.IfStmt) (*flowSignal, error) {
	cond, err := c.evalExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	truth, err := c.numericTruth(n.If, cond)
	if err != nil {
		return nil, err
	}
	if truth {
		return c.runScopedBlock(newFrame(FrameScope), n.Then)
	}
	switch e := n.Else.(type) {
	case nil:
		return nil, nil
	case *ast.IfStmt:
		return c.execIf(e)
	default:
		return c.execStmt(n.Else)
	}
}

// execFor implements both C-style "for (init; cond; post)" and,
// per ForStmt's doc, a lowered "while (cond)" (Init and Post nil).
func (c *ExecutionContext) execFor(n *ast.ForStmt) (*flowSignal, error) {
	// This frame only scopes Init's declaration (if any); break/continue
	// are interpreted directly below rather than through Handles/Blocks,
	// since a loop's handling of continue (run Post, keep looping) has no
	// equivalent in the generic frame-resolution model.
	frame := newFrame(FrameScope)
	c.pushFrame(frame)
	defer c.popFrame()

	if n.Init != nil {
		if _, err := c.execStmt(n.Init); err != nil {
			return nil, err
		}
	}
	for {
		if n.Cond != nil {
			cond, err := c.evalExpr(n.Cond)
			if err != nil {
				return nil, err
			}
			truth, err := c.numericTruth(n.For, cond)
			if err != nil {
				return nil, err
			}
			if !truth {
				break
			}
		}

		bodyFrame := newFrame(FrameScope)
		c.pushFrame(bodyFrame)
		sig, err := c.execBlock(n.Body)
		c.popFrame()
		if err != nil {
			return nil, err
		}
		if sig != nil {
			switch sig.kind {
			case FlowBreak:
				return nil, nil
			case FlowContinue:
				// fall through to Post
			default:
				return sig, nil
			}
		}

		if n.Post != nil {
			if _, err := c.execStmt(n.Post); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// execSwitch implements "switch (TAG) { case V: ...; default: ... }":
// the first matching case clause (or, absent one, the default clause)
// runs, falling through to subsequent clauses exactly like the cases
// that follow it in source order, until a break or the switch's end.
func (c *ExecutionContext) execSwitch(n *ast.SwitchStmt) (*flowSignal, error) {
	tag, err := c.evalExpr(n.Tag)
	if err != nil {
		return nil, err
	}

	// Like execFor, break is interpreted directly in the clause loop below
	// rather than through this frame's Handles/Blocks.
	frame := newFrame(FrameScope)
	c.pushFrame(frame)
	defer c.popFrame()

	start := -1
	defaultIdx := -1
	for i, cc := range n.Cases {
		if len(cc.Values) == 0 {
			defaultIdx = i
			continue
		}
		for _, ve := range cc.Values {
			v, err := c.evalExpr(ve)
			if err != nil {
				return nil, err
			}
			eq, err := c.valuesEqual(ve, tag, v)
			if err != nil {
				return nil, err
			}
			if eq {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		start = defaultIdx
	}
	if start < 0 {
		return nil, nil
	}

	for _, cc := range n.Cases[start:] {
		for _, st := range cc.Stmts {
			sig, err := c.execStmt(st)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				if sig.kind == FlowBreak {
					return nil, nil
				}
				return sig, nil
			}
		}
	}
	return nil, nil
}

func (c *ExecutionContext) valuesEqual(at ast.Expr, a, b types.Value) (bool, error) {
	pos, _ := at.Span()
	ord, ok := a.(types.Ordered)
	if !ok {
		return false, &TypeMismatchError{Pos: c.position(pos), Msg: "switch tag is not comparable"}
	}
	n, err := ord.Cmp(b, 0)
	if err != nil {
		return false, c.wrapValueErr(pos, err)
	}
	return n == 0, nil
}
