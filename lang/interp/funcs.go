package interp

import (
	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// userFunc is a template-defined function, implementing the function
// interface alongside the built-ins of builtins.go.
type userFunc struct {
	decl       *ast.FuncDefnStmt
	returnDesc *types.TypeDescriptor
	paramDescs []*types.TypeDescriptor
}

// execFuncDefn resolves a function declaration's signature and registers
// it, per §4.4.2.
func (c *ExecutionContext) execFuncDefn(n *ast.FuncDefnStmt) error {
	retDesc, err := c.resolveTypeExpr(n.ReturnType)
	if err != nil {
		return err
	}
	paramDescs := make([]*types.TypeDescriptor, len(n.Params))
	for i, p := range n.Params {
		pd, err := c.resolveTypeExpr(p.Type)
		if err != nil {
			return err
		}
		paramDescs[i] = pd
	}
	fn := &userFunc{decl: n, returnDesc: retDesc, paramDescs: paramDescs}
	return c.defineFunction(n.Name, fn, n.Pos)
}

// call implements §4.4.2: arguments are evaluated left-to-right by the
// caller (evalCall) before reaching here; call pushes a function frame
// that handles return and blocks break/continue (bare break/continue
// directly in a function body, outside any loop or switch, is an error,
// per the frame-mask design of §4.4.3), binds each parameter, executes
// the body, and validates the resulting return value's type.
func (f *userFunc) call(c *ExecutionContext, args []types.Value, callPos token.Pos) (types.Value, error) {
	if len(args) != len(f.paramDescs) {
		return nil, &TypeMismatchError{Pos: c.position(callPos), Msg: "argument count mismatch calling " + f.decl.Name}
	}

	frame := newFrame(FrameFunction)
	frame.Handles = FlowReturn
	frame.Blocks = FlowBreak | FlowContinue
	frame.ReturnType = f.returnDesc

	for i, p := range f.decl.Params {
		frame.defineVar(p.Name, f.paramDescs[i], types.NewMutableCell(f.paramDescs[i], args[i]))
	}

	c.pushFrame(frame)
	sig, err := c.execBlock(f.decl.Body)
	c.popFrame()
	if err != nil {
		return nil, err
	}
	// A bare break/continue directly in the function body (not inside one
	// of its own loops, which would have already consumed it) is blocked
	// by the frame and surfaces as the precise §7 error here.
	if _, ferr := frame.resolveFlow(c, sig); ferr != nil {
		return nil, ferr
	}

	if sig == nil || sig.kind != FlowReturn {
		if f.returnDesc.Base != types.Void {
			return nil, &MissingReturnError{Pos: c.position(f.decl.Body.End), Name: f.decl.Name}
		}
		return nil, nil
	}

	if f.returnDesc.Base == types.Void {
		return nil, nil
	}
	if sig.value == nil {
		return nil, &MissingReturnError{Pos: c.position(sig.pos), Name: f.decl.Name}
	}

	retTypeDesc := valueDescriptor(sig.value)
	if !retTypeDesc.AssignableTo(f.returnDesc) {
		return nil, &TypeMismatchError{Pos: c.position(sig.pos), Msg: "return value not assignable to " + f.decl.Name + "'s declared return type"}
	}
	return sig.value, nil
}

// valueDescriptor recovers the TypeDescriptor a decoded Value corresponds
// to, needed to check §4.4.5 assignability against a declared type.
func valueDescriptor(v types.Value) *types.TypeDescriptor {
	switch x := v.(type) {
	case types.Int:
		return x.Desc
	case types.Float:
		return x.Desc
	case types.Str:
		return &types.TypeDescriptor{Base: types.String}
	case *types.Struct:
		return x.Desc
	case *types.Array:
		return x.ElemDesc.AsArray()
	default:
		return &types.TypeDescriptor{Base: types.Void}
	}
}
