package interp

import (
	"fmt"

	"github.com/mna/bintmpl/lang/ast"
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// voidDesc is the descriptor for a function declared without a return
// type ("void NAME(...)"); "void" is not a primitive alias (§6's table
// only lists the numeric/string aliases), so it is resolved here instead
// of through types.Lookup.
var voidDesc = &types.TypeDescriptor{Base: types.Void}

// resolveTypeExpr resolves a TYPE production (§4.4.1 step 1: "look up
// TYPE via find_type") to its descriptor, consulting the "unsigned"
// prefix table, the "void" special case, and otherwise the innermost
// frame/global type alias table falling back to the primitive aliases.
func (c *ExecutionContext) resolveTypeExpr(te *ast.TypeExpr) (*types.TypeDescriptor, error) {
	if te.Keyword == token.UNSIGNED {
		d, ok := types.LookupUnsigned(te.Name)
		if !ok {
			return nil, &UndefinedTypeError{Pos: c.position(te.Start), Name: "unsigned " + te.Name}
		}
		return d, nil
	}
	if te.Keyword == token.ILLEGAL && te.Name == "void" {
		return voidDesc, nil
	}
	d, ok := c.lookupType(te.Name)
	if !ok {
		return nil, &UndefinedTypeError{Pos: c.position(te.Start), Name: te.Name}
	}
	return d, nil
}

// execVarDefn implements §4.4.1: binding a buffer-backed "TYPE NAME;",
// "TYPE NAME[LEN];" or "TYPE NAME(ARGS);" declaration.
func (c *ExecutionContext) execVarDefn(n *ast.VarDefnStmt) error {
	desc, err := c.resolveTypeExpr(n.Type)
	if err != nil {
		return err
	}
	if c.innermostFunction() >= 0 {
		return &GlobalInFunctionBodyError{Pos: c.position(n.Pos), Name: n.Name}
	}

	if n.ArrayLen != nil {
		return c.bindArray(n.Name, n.Pos, desc, n.ArrayLen, c.defineBufferVar, true)
	}
	if desc.Base == types.Struct {
		cell, err := c.bindStructInstance(n.Name, desc, n.Args, true)
		if err != nil {
			return err
		}
		return c.defineBufferVar(n.Name, desc, cell, n.Pos)
	}
	return c.bindPrimitive(n.Name, n.Pos, desc)
}

// execLocalVarDefn implements "local TYPE NAME (= INIT)?;" / "local TYPE
// NAME[LEN];" / "local TYPE NAME(ARGS);": always a Mutable cell in the
// current frame's own scope, never advancing the cursor.
func (c *ExecutionContext) execLocalVarDefn(n *ast.LocalVarDefnStmt) error {
	desc, err := c.resolveTypeExpr(n.Type)
	if err != nil {
		return err
	}

	if n.ArrayLen != nil {
		return c.bindArray(n.Name, n.Pos, desc, n.ArrayLen, c.defineLocalVar, false)
	}
	if desc.Base == types.Struct {
		cell, err := c.bindStructInstance(n.Name, desc, n.Args, false)
		if err != nil {
			return err
		}
		return c.defineLocalVar(n.Name, desc, cell, n.Pos)
	}

	var v types.Value
	if n.Init != nil {
		v, err = c.evalExpr(n.Init)
		if err != nil {
			return err
		}
	} else {
		v = zeroValue(desc)
	}
	cell := types.NewMutableCell(desc, v)
	return c.defineLocalVar(n.Name, desc, cell, n.Pos)
}

// zeroValue is the default value for a freshly declared local that has no
// explicit initializer.
func zeroValue(desc *types.TypeDescriptor) types.Value {
	switch desc.Base {
	case types.String:
		return types.Str("")
	case types.Number:
		if desc.Kind == types.FloatKind {
			return types.Float{Desc: desc, V: 0}
		}
		return types.Int{Desc: desc, V: 0}
	default:
		return types.NewInt(0)
	}
}

// bindPrimitive binds a single buffer-backed primitive value at the
// current cursor, advances the cursor by its size, and emits the
// set_data_type/set_comment host calls §4.4.1 describes.
func (c *ExecutionContext) bindPrimitive(name string, pos token.Pos, desc *types.TypeDescriptor) error {
	offset := c.NextVariable
	cell := types.NewFileBackedCell(desc, c.Host, offset, c.BigEndian)
	c.NextVariable += int64(desc.Size())

	if code, ok := desc.EndianCode(c.BigEndian); ok {
		if err := c.Host.SetDataType(offset, int64(desc.Size()), code); err != nil {
			return c.wrapValueErr(pos, err)
		}
	}
	if err := c.Host.SetComment(offset, int64(desc.Size()), name); err != nil {
		return c.wrapValueErr(pos, err)
	}
	return c.defineBufferVar(name, desc, cell, pos)
}

// defineFn abstracts over defineBufferVar/defineLocalVar so bindArray can
// serve both "TYPE NAME[LEN];" and "local TYPE NAME[LEN];".
type defineFn func(name string, d *types.TypeDescriptor, cell types.Cell, pos token.Pos) error

// bindArray implements §4.4.1's array-binding loop: evaluate LEN, then
// bind one element per index, commenting each "NAME[i]".
func (c *ExecutionContext) bindArray(name string, pos token.Pos, elemDesc *types.TypeDescriptor, lenExpr ast.Expr, define defineFn, buffered bool) error {
	lenVal, err := c.evalExpr(lenExpr)
	if err != nil {
		return err
	}
	n, ok := lenVal.(types.Int)
	if !ok {
		start, _ := lenExpr.Span()
		return &TypeMismatchError{Pos: c.position(start), Msg: "array length must be numeric"}
	}
	if n.V < 0 {
		start, _ := lenExpr.Span()
		return &OutOfRangeIndexError{Pos: c.position(start), Index: n.V}
	}

	elems := make([]types.Cell, n.V)
	for i := int64(0); i < n.V; i++ {
		elemName := fmt.Sprintf("%s[%d]", name, i)
		if !buffered {
			elems[i] = types.NewMutableCell(elemDesc, zeroValue(elemDesc))
			continue
		}
		if elemDesc.Base == types.Struct {
			cell, err := c.bindStructInstance(elemName, elemDesc, nil, true)
			if err != nil {
				return err
			}
			elems[i] = cell
			continue
		}
		offset := c.NextVariable
		cell := types.NewFileBackedCell(elemDesc, c.Host, offset, c.BigEndian)
		c.NextVariable += int64(elemDesc.Size())
		if code, ok := elemDesc.EndianCode(c.BigEndian); ok {
			if err := c.Host.SetDataType(offset, int64(elemDesc.Size()), code); err != nil {
				return c.wrapValueErr(pos, err)
			}
		}
		if err := c.Host.SetComment(offset, int64(elemDesc.Size()), elemName); err != nil {
			return c.wrapValueErr(pos, err)
		}
		elems[i] = cell
	}

	arr := types.NewArray(elemDesc, elems)
	arrDesc := elemDesc.AsArray()
	return define(name, arrDesc, types.NewConstantCell(arrDesc, arr), pos)
}

// bindStructInstance implements §4.4.1's struct-binding algorithm: push a
// FrameStruct, bind constructor parameters as locals, execute the body
// (which populates the struct's member table as a side effect via
// defineBufferVar), pop the frame, and bundle the populated Struct value
// behind a Cell. Struct instantiation itself never calls SetDataType —
// only the primitive members it declares do.
func (c *ExecutionContext) bindStructInstance(name string, desc *types.TypeDescriptor, args []ast.Expr, buffered bool) (types.Cell, error) {
	argVals := make([]types.Value, len(args))
	for i, a := range args {
		v, err := c.evalExpr(a)
		if err != nil {
			return nil, err
		}
		argVals[i] = v
	}

	sv := types.NewStruct(desc)
	frame := newFrame(FrameStruct)
	frame.Struct = sv
	// A struct body is not a loop or function: return/break/continue
	// appearing directly inside one (not inside a nested loop of its own,
	// which would have its own Handles) is always an error.
	frame.Blocks = FlowReturn | FlowBreak | FlowContinue

	for i, p := range desc.StructParams {
		if i >= len(argVals) {
			break
		}
		pd, err := c.resolveTypeExpr(p.Type)
		if err != nil {
			return nil, err
		}
		frame.defineVar(p.Name, pd, types.NewMutableCell(pd, argVals[i]))
	}

	c.pushFrame(frame)
	sig, err := c.execBlock(desc.StructBody)
	c.popFrame()
	if err != nil {
		return nil, err
	}
	if consumed, ferr := frame.resolveFlow(c, sig); ferr != nil {
		return nil, ferr
	} else if !consumed {
		return nil, &InternalError{Pos: c.position(desc.StructBody.Start), Msg: "flow control escaped a struct body"}
	}

	if buffered {
		return types.NewConstantCell(desc, sv), nil
	}
	return types.NewMutableCell(desc, sv), nil
}

// execStructDefn registers a struct type (and, if requested, directly
// instantiates a variable of it) per StructDefnStmt's combined grammar.
func (c *ExecutionContext) execStructDefn(n *ast.StructDefnStmt) error {
	desc := types.NewStructDescriptor(n.Tag, n.Params, n.Body)

	if n.Tag != "" {
		if !c.top().defineType(n.Tag, desc) {
			return &RedefinedTypeError{Pos: c.position(n.Struct), Name: n.Tag}
		}
	}
	if n.Typedef {
		if !c.top().defineType(n.TypedefName, desc) {
			return &RedefinedTypeError{Pos: c.position(n.Struct), Name: n.TypedefName}
		}
	}

	if n.InstName == "" {
		return nil
	}
	if c.innermostFunction() >= 0 {
		return &GlobalInFunctionBodyError{Pos: c.position(n.Struct), Name: n.InstName}
	}
	if n.ArrayLen != nil {
		return c.bindArray(n.InstName, n.Struct, desc, n.ArrayLen, c.defineBufferVar, true)
	}
	cell, err := c.bindStructInstance(n.InstName, desc, n.InstArgs, true)
	if err != nil {
		return err
	}
	return c.defineBufferVar(n.InstName, desc, cell, n.Struct)
}

// execEnumDefn registers an enum type's tag (if any) and each of its
// members as an int-valued constant, per §6 (enum members behave as
// named integer constants of the enum's underlying type).
func (c *ExecutionContext) execEnumDefn(n *ast.EnumDefnStmt) error {
	underlying := types.NewInt(0).Desc
	if n.Underlying != nil {
		d, err := c.resolveTypeExpr(n.Underlying)
		if err != nil {
			return err
		}
		underlying = d
	}

	desc := &types.TypeDescriptor{
		Base: types.Number, Length: underlying.Length, Signed: underlying.Signed,
		Kind: underlying.Kind, EndianCodes: underlying.EndianCodes,
	}

	if n.Tag != "" {
		if !c.top().defineType(n.Tag, desc) {
			return &RedefinedTypeError{Pos: c.position(n.Enum), Name: n.Tag}
		}
	}
	if n.Typedef {
		if !c.top().defineType(n.TypedefName, desc) {
			return &RedefinedTypeError{Pos: c.position(n.Enum), Name: n.TypedefName}
		}
	}

	next := int64(0)
	for _, m := range n.Members {
		v := next
		if m.Value != nil {
			val, err := c.evalExpr(m.Value)
			if err != nil {
				return err
			}
			iv, ok := val.(types.Int)
			if !ok {
				return &TypeMismatchError{Pos: c.position(m.Pos), Msg: "enum member value must be numeric"}
			}
			v = iv.V
		}
		next = v + 1
		cell := types.NewConstantCell(desc, types.Int{Desc: desc, V: v})
		if !c.top().defineVar(m.Name, desc, cell) {
			return &RedefinedVariableError{Pos: c.position(m.Pos), Name: m.Name}
		}
	}
	return nil
}

// execTypedef registers a plain type alias: "typedef TYPE NAME;".
func (c *ExecutionContext) execTypedef(n *ast.TypedefStmt) error {
	desc, err := c.resolveTypeExpr(n.Type)
	if err != nil {
		return err
	}
	if !c.top().defineType(n.Name, desc) {
		return &RedefinedTypeError{Pos: c.position(n.Pos), Name: n.Name}
	}
	return nil
}
