package interp

import (
	"fmt"

	"github.com/mna/bintmpl/lang/token"
)

// Each error below is one taxonomy entry of §7, carrying the resolved
// source Position the way scanner.Error and PreprocessorError already do
// in the earlier pipeline stages. InternalError is the assertion-failure
// catch-all §4.4.3 reserves for a flow-control kind the frame stack
// doesn't recognize at all, which a correct parser/interpreter pairing
// never produces.

type UndefinedTypeError struct {
	Pos  token.Position
	Name string
}

func (e *UndefinedTypeError) Error() string {
	return fmt.Sprintf("%s: undefined type %q", e.Pos, e.Name)
}

type UndefinedVariableError struct {
	Pos  token.Position
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: undefined variable %q", e.Pos, e.Name)
}

type UndefinedFunctionError struct {
	Pos  token.Position
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("%s: undefined function %q", e.Pos, e.Name)
}

type UndefinedMemberError struct {
	Pos  token.Position
	Name string
}

func (e *UndefinedMemberError) Error() string {
	return fmt.Sprintf("%s: undefined member %q", e.Pos, e.Name)
}

type RedefinedVariableError struct {
	Pos  token.Position
	Name string
}

func (e *RedefinedVariableError) Error() string {
	return fmt.Sprintf("%s: %q already defined", e.Pos, e.Name)
}

type RedefinedFunctionError struct {
	Pos  token.Position
	Name string
}

func (e *RedefinedFunctionError) Error() string {
	return fmt.Sprintf("%s: function %q already defined", e.Pos, e.Name)
}

type RedefinedTypeError struct {
	Pos  token.Position
	Name string
}

func (e *RedefinedTypeError) Error() string {
	return fmt.Sprintf("%s: type %q already defined", e.Pos, e.Name)
}

type TypeMismatchError struct {
	Pos token.Position
	Msg string
}

func (e *TypeMismatchError) Error() string { return fmt.Sprintf("%s: type mismatch: %s", e.Pos, e.Msg) }

type OutOfRangeIndexError struct {
	Pos   token.Position
	Index int64
}

func (e *OutOfRangeIndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range", e.Pos, e.Index)
}

type GlobalInFunctionBodyError struct {
	Pos  token.Position
	Name string
}

func (e *GlobalInFunctionBodyError) Error() string {
	return fmt.Sprintf("%s: variable %q declared inside a function body", e.Pos, e.Name)
}

type MissingReturnError struct {
	Pos  token.Position
	Name string
}

func (e *MissingReturnError) Error() string {
	return fmt.Sprintf("%s: function %q must return a value", e.Pos, e.Name)
}

type ReturnOutsideFunctionError struct{ Pos token.Position }

func (e *ReturnOutsideFunctionError) Error() string {
	return fmt.Sprintf("%s: return outside function", e.Pos)
}

type BreakOutsideLoopError struct{ Pos token.Position }

func (e *BreakOutsideLoopError) Error() string {
	return fmt.Sprintf("%s: break outside loop or switch", e.Pos)
}

type ContinueOutsideLoopError struct{ Pos token.Position }

func (e *ContinueOutsideLoopError) Error() string {
	return fmt.Sprintf("%s: continue outside loop", e.Pos)
}

type DivisionByZeroError struct{ Pos token.Position }

func (e *DivisionByZeroError) Error() string { return fmt.Sprintf("%s: division by zero", e.Pos) }

type AssignmentToConstantError struct{ Pos token.Position }

func (e *AssignmentToConstantError) Error() string {
	return fmt.Sprintf("%s: assignment to constant", e.Pos)
}

type AssignmentToFileVariableError struct{ Pos token.Position }

func (e *AssignmentToFileVariableError) Error() string {
	return fmt.Sprintf("%s: assignment to file-backed variable", e.Pos)
}

// TemplateAbortedError wraps the error a Host's Yield returned, per §5:
// "the yield hook is permitted to abort execution by surfacing an error
// that unwinds the interpreter".
type TemplateAbortedError struct {
	Pos token.Position
	Err error
}

func (e *TemplateAbortedError) Error() string {
	return fmt.Sprintf("%s: template aborted: %v", e.Pos, e.Err)
}
func (e *TemplateAbortedError) Unwrap() error { return e.Err }

// EndOfBufferError is raised when a file-backed value is read past what
// the host actually returned (§9 Open Question: resolved as "surface an
// error at the point of access" rather than failing at declaration time).
type EndOfBufferError struct{ Pos token.Position }

func (e *EndOfBufferError) Error() string { return fmt.Sprintf("%s: end of buffer", e.Pos) }

type InternalError struct {
	Pos token.Position
	Msg string
}

func (e *InternalError) Error() string { return fmt.Sprintf("%s: internal error: %s", e.Pos, e.Msg) }
