package interp

import (
	"github.com/mna/bintmpl/lang/token"
	"github.com/mna/bintmpl/lang/types"
)

// wrapValueErr maps a lang/types sentinel error (returned by Cell.Get/Set
// or a Value's Binary/Unary/Index/Attr) to the positioned §7 taxonomy
// error it corresponds to. types stays free of any dependency on interp's
// error types, so this translation lives here, at the boundary.
func (c *ExecutionContext) wrapValueErr(pos token.Pos, err error) error {
	if err == nil {
		return nil
	}
	p := c.position(pos)
	switch err {
	case types.ErrDivisionByZero:
		return &DivisionByZeroError{Pos: p}
	case types.ErrTypeMismatch:
		return &TypeMismatchError{Pos: p, Msg: err.Error()}
	case types.ErrOutOfRangeIndex:
		return &OutOfRangeIndexError{Pos: p}
	case types.ErrNoSuchMember:
		return &UndefinedMemberError{Pos: p}
	case types.ErrEndOfBuffer:
		return &EndOfBufferError{Pos: p}
	case types.ErrAssignConstant:
		return &AssignmentToConstantError{Pos: p}
	case types.ErrAssignFileBacked:
		return &AssignmentToFileVariableError{Pos: p}
	default:
		return err
	}
}
