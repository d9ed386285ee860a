// Package host defines the boundary the interpreter uses to reach the
// surrounding application (§6's Host Interface): annotating the target
// buffer, reading its bytes, and cooperative yield/cancellation. It also
// provides Buffer, an in-memory reference implementation for standalone use
// and tests.
package host

// Host is the set of operations the interpreter requires of its embedder,
// exactly §6's table.
type Host interface {
	// SetDataType marks [offset, offset+length) as having encoding code, one
	// of the endian codes of §6 (or a struct/string type with no code,
	// which the interpreter never calls SetDataType for).
	SetDataType(offset, length int64, code string) error

	// SetComment attaches text as the display comment on
	// [offset, offset+length).
	SetComment(offset, length int64, text string) error

	// ReadData returns up to length bytes starting at offset. Returning
	// fewer than length bytes is not itself an error (§6: "short read is
	// not an error"); the interpreter's FileBacked cells treat a short
	// result as types.ErrEndOfBuffer only once decoding is attempted.
	ReadData(offset, length int64) ([]byte, error)

	// FileLength returns the total addressable length of the target.
	FileLength() (int64, error)

	// Print is the diagnostic sink Printf forwards formatted text to.
	Print(s string) error

	// Yield gives the embedder a cooperative checkpoint to pump its event
	// loop and check for cancellation. Returning a non-nil error aborts
	// the run; the interpreter surfaces it as TemplateAborted.
	Yield() error
}
