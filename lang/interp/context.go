// Package interp is the tree-walking evaluator of §4.4: it walks the AST
// produced by lang/parser against an ExecutionContext holding the frame
// stack, global variable tree, cursor, endianness flag and host handle of
// §3, calling out to a host.Host to read bytes, annotate ranges, and
// cooperatively yield.
package interp

import (
	"context"
	"sync/atomic"

	"github.com/dolthub/swiss"

	"github.com/mna/bintmpl/host"
	"github.com/mna/bintmpl/lang/preprocess"
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// yieldEvery is how many statement-level yield calls the context
// accumulates before it actually calls through to the host's Yield, so
// that a cheap in-process cancellation check doesn't dominate run time on
// short templates while still keeping cancellation latency low on long
// ones (§5: "real work ... occurs every N increments, N on the order of a
// few thousand").
const yieldEvery = 2000

// ExecutionContext is §3's "Execution context": the frame stack, the
// globals table, the functions table, the buffer-binding cursor, the
// endianness flag and the host handle, all threaded explicitly through
// every evaluator call rather than resolved via ambient/global state (§9:
// "monkey-patched environments -> explicit context").
type ExecutionContext struct {
	Files *token.FileSet

	// LineTable, when non-nil, rebases every resolved Position through the
	// original #include source it came from, the same way the preprocessor's
	// own line table rebases parse errors (lang/preprocess's doc comment:
	// "so later stages can report source locations across included files").
	// Files has only one token.File per Run, named for the root template, so
	// without this every runtime error from included code would report the
	// root template's name and the included line's offset in the
	// concatenated stream instead of its own file and line.
	LineTable *preprocess.LineTable

	frames  []*Frame
	globals *swiss.Map[string, *binding]

	functions map[string]function

	// NextVariable is the cursor: the next byte offset a template-scope
	// buffer-binding declaration will claim.
	NextVariable int64
	BigEndian    bool

	Host host.Host

	// Cancellation is grounded on machine.Thread's pattern (lang/machine/
	// thread.go): a context.Context watched by a background goroutine that
	// flips an atomic flag, plus a step counter, rather than relying on
	// ctx.Err() directly on every yield (a Context's Done channel read can
	// itself be comparatively expensive on a hot per-statement path).
	ctx       context.Context
	ctxCancel context.CancelFunc
	cancelled atomic.Bool
	steps     uint64
}

// NewExecutionContext creates a fresh execution context bound to h and
// cancelable via ctx (typically mainer.CancelOnSignal's context at the
// CLI, or context.Background() for an embedder with no cancellation
// source of its own). lt, if non-nil, rebases every position this context
// reports through the original #include sources the preprocessor inlined
// into files; pass nil for a chunk that was never preprocessed.
func NewExecutionContext(ctx context.Context, files *token.FileSet, lt *preprocess.LineTable, h host.Host) *ExecutionContext {
	cctx, cancel := context.WithCancel(ctx)
	c := &ExecutionContext{
		Files:     files,
		LineTable: lt,
		globals:   swiss.NewMap[string, *binding](16),
		functions: make(map[string]function),
		Host:      h,
		ctx:       cctx,
		ctxCancel: cancel,
	}
	registerBuiltins(c)
	go func() {
		<-c.ctx.Done()
		c.cancelled.Store(true)
	}()
	return c
}

// Close releases the context's background cancellation watcher. Callers
// that run a template to completion should call this once done.
func (c *ExecutionContext) Close() { c.ctxCancel() }

// position resolves p against Files and, when LineTable is set, rebases the
// result to the original #include source and line, exactly as
// internal/maincmd's resolvePos does for parse errors.
func (c *ExecutionContext) position(p token.Pos) token.Position {
	pos := c.Files.Position(p)
	if c.LineTable == nil || !pos.IsValid() {
		return pos
	}
	file, line := c.LineTable.Resolve(pos.Line)
	if file == "" {
		return pos
	}
	return token.Position{Filename: file, Line: line, Column: pos.Column, Offset: pos.Offset}
}

// pushFrame pushes f onto the top of the frame stack.
func (c *ExecutionContext) pushFrame(f *Frame) { c.frames = append(c.frames, f) }

// popFrame removes and returns the topmost frame.
func (c *ExecutionContext) popFrame() *Frame {
	n := len(c.frames)
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	return f
}

func (c *ExecutionContext) top() *Frame { return c.frames[len(c.frames)-1] }

// innermostFunction returns the index of the topmost FrameFunction frame,
// or -1 if none is on the stack (template scope).
func (c *ExecutionContext) innermostFunction() int {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].Kind == FrameFunction {
			return i
		}
	}
	return -1
}

// lookupVar implements §3's name lookup order: "innermost frame outwards,
// stopping at (and not penetrating) the first function frame, then the
// globals table".
func (c *ExecutionContext) lookupVar(name string) (*binding, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if b, ok := f.lookupVar(name); ok {
			return b, true
		}
		if f.Kind == FrameFunction {
			break
		}
	}
	if b, ok := c.globals.Get(name); ok {
		return b, true
	}
	return nil, false
}

// lookupType walks the same frame range as lookupVar (a type alias or
// struct defined inside a function body is local to it), then falls back
// to the fixed primitive alias table of §6.
func (c *ExecutionContext) lookupType(name string) (*types.TypeDescriptor, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if d, ok := f.lookupType(name); ok {
			return d, true
		}
		if f.Kind == FrameFunction {
			break
		}
	}
	return types.Lookup(name)
}

// innermostStruct returns the nearest enclosing FrameStruct frame, without
// crossing a function frame boundary (a function body declaring "TYPE
// NAME;" is declaring a global, not adding to some caller's struct, since
// a function frame always sits below any struct frame that matters here).
func (c *ExecutionContext) innermostStruct() (*Frame, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		switch c.frames[i].Kind {
		case FrameFunction:
			return nil, false
		case FrameStruct:
			return c.frames[i], true
		}
	}
	return nil, false
}

// defineBufferVar implements §4.4.1 step 3's destination choice for a
// buffer-binding "TYPE NAME;" declaration: the innermost struct frame's
// member mapping if one is open, otherwise the globals table.
func (c *ExecutionContext) defineBufferVar(name string, d *types.TypeDescriptor, cell types.Cell, pos token.Pos) error {
	if sf, ok := c.innermostStruct(); ok {
		if !sf.defineVar(name, d, cell) {
			return &RedefinedVariableError{Pos: c.position(pos), Name: name}
		}
		sf.Struct.Define(name, cell)
		return nil
	}
	if _, ok := c.globals.Get(name); ok {
		return &RedefinedVariableError{Pos: c.position(pos), Name: name}
	}
	c.globals.Put(name, &binding{desc: d, cell: cell})
	return nil
}

// defineLocalVar implements "local TYPE NAME": it always lives in the
// current innermost frame's own locals, never in globals or a struct's
// member mapping (§4.2: "not bound to the buffer; lives in the innermost
// scope").
func (c *ExecutionContext) defineLocalVar(name string, d *types.TypeDescriptor, cell types.Cell, pos token.Pos) error {
	if !c.top().defineVar(name, d, cell) {
		return &RedefinedVariableError{Pos: c.position(pos), Name: name}
	}
	return nil
}

// yield implements §5's cooperative cancellation: called at least once per
// evaluated statement, it accumulates cheap in-process checks and only
// calls through to the host every yieldEvery steps.
func (c *ExecutionContext) yield(pos token.Pos) error {
	c.steps++
	if c.cancelled.Load() {
		return &TemplateAbortedError{Pos: c.position(pos), Err: c.ctx.Err()}
	}
	if c.steps%yieldEvery != 0 {
		return nil
	}
	if err := c.Host.Yield(); err != nil {
		return &TemplateAbortedError{Pos: c.position(pos), Err: err}
	}
	return nil
}

// function is a callable bound in the functions table: either a built-in
// (BigEndian, LittleEndian, Printf) or a user-defined template function.
type function interface {
	call(c *ExecutionContext, args []types.Value, callPos token.Pos) (types.Value, error)
}

func (c *ExecutionContext) defineFunction(name string, fn function, pos token.Pos) error {
	if _, ok := c.functions[name]; ok {
		return &RedefinedFunctionError{Pos: c.position(pos), Name: name}
	}
	c.functions[name] = fn
	return nil
}

func (c *ExecutionContext) lookupFunction(name string) (function, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}
