package types

import "errors"

// Sentinel errors returned by Value operations (Binary, Unary, Index,
// Attr, ...). lang/interp wraps these in its own positioned error
// taxonomy; this package stays free of any dependency on lang/interp so
// that interp can depend on types without a cycle.
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrOutOfRangeIndex = errors.New("index out of range")
	ErrNoSuchMember    = errors.New("no such member")
	// ErrEndOfBuffer is returned by a FileBacked Cell's Get when the host
	// returns fewer bytes than the cell's declared length (§9 Open
	// Question: short reads surface as an error at access time rather than
	// silently returning a zero value).
	ErrEndOfBuffer = errors.New("end of buffer")
	// ErrAssignConstant and ErrAssignFileBacked are returned by Cell.Set.
	ErrAssignConstant   = errors.New("assignment to constant")
	ErrAssignFileBacked = errors.New("assignment to file-backed variable")
)
