package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/bintmpl/lang/types"
)

// FrameKind identifies the role a Frame plays on the frame stack, one of
// the four kinds §3's "Stack frame" data model entry names.
type FrameKind int

const (
	// FrameBase is the single, bottommost frame pushed for the lifetime of
	// a run; template-scope variable declarations land in the globals
	// table, not in this frame, but it still anchors flow-control
	// propagation (break/continue/return escaping all the way up here are
	// programmer errors, not silent no-ops).
	FrameBase FrameKind = iota
	// FrameStruct is pushed while a struct body executes to bind an
	// instance; its Struct field accumulates the members being declared.
	FrameStruct
	// FrameFunction is pushed for a user function call; it blocks lookup
	// from ascending into enclosing template scope (§3: "functions see
	// only their parameters and globals, not lexically enclosing
	// declarations").
	FrameFunction
	// FrameScope is pushed for an ordinary block: an if/for/while body, or
	// a switch case list.
	FrameScope
)

// FlowMask is a subset of {return, break, continue}, §3's
// handles_flowctrl/blocks_flowctrl bitmasks.
type FlowMask uint8

const (
	FlowReturn FlowMask = 1 << iota
	FlowBreak
	FlowContinue
)

func (m FlowMask) has(k FlowMask) bool { return m&k != 0 }

// binding is the (TypeDescriptor, Cell) pair a name resolves to, per §3's
// "mapping from identifier to (TypeDescriptor, Value)".
type binding struct {
	desc *types.TypeDescriptor
	cell types.Cell
}

// Frame is one record of the execution context's frame stack (§3).
type Frame struct {
	Kind FrameKind

	vars  *swiss.Map[string, *binding]
	types map[string]*types.TypeDescriptor

	Handles FlowMask
	Blocks  FlowMask

	// ReturnType is set on FrameFunction frames to the function's declared
	// return type, used to check a returned value's assignability
	// (§4.4.5) and to detect MissingReturn for a non-void function.
	ReturnType *types.TypeDescriptor

	// Struct is set on FrameStruct frames: the instance being populated as
	// its body executes.
	Struct *types.Struct
}

func newFrame(kind FrameKind) *Frame {
	return &Frame{
		Kind:  kind,
		vars:  swiss.NewMap[string, *binding](4),
		types: make(map[string]*types.TypeDescriptor),
	}
}

func (f *Frame) defineVar(name string, d *types.TypeDescriptor, c types.Cell) bool {
	if _, ok := f.vars.Get(name); ok {
		return false
	}
	f.vars.Put(name, &binding{desc: d, cell: c})
	return true
}

func (f *Frame) lookupVar(name string) (*binding, bool) { return f.vars.Get(name) }

func (f *Frame) defineType(name string, d *types.TypeDescriptor) bool {
	if _, ok := f.types[name]; ok {
		return false
	}
	f.types[name] = d
	return true
}

func (f *Frame) lookupType(name string) (*types.TypeDescriptor, bool) {
	d, ok := f.types[name]
	return d, ok
}

// resolveFlow reconciles a flow signal surfacing from this frame's body
// against its Handles/Blocks masks (§4.4.3: "handled kinds stop
// propagation; blocked kinds [are an error]; unknown kinds escape
// upward"). consumed reports whether the caller should stop propagating
// sig any further (whether because it was handled, or because it was
// blocked and err is the resulting taxonomy error).
func (f *Frame) resolveFlow(ctx *ExecutionContext, sig *flowSignal) (consumed bool, err error) {
	if sig == nil {
		return true, nil
	}
	if f.Handles.has(sig.kind) {
		return true, nil
	}
	if f.Blocks.has(sig.kind) {
		switch sig.kind {
		case FlowReturn:
			return true, &ReturnOutsideFunctionError{Pos: ctx.position(sig.pos)}
		case FlowBreak:
			return true, &BreakOutsideLoopError{Pos: ctx.position(sig.pos)}
		case FlowContinue:
			return true, &ContinueOutsideLoopError{Pos: ctx.position(sig.pos)}
		}
	}
	return false, nil
}
