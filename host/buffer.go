package host

// DataType records one SetDataType call.
type DataType struct {
	Offset, Length int64
	Code           string
}

// Comment records one SetComment call.
type Comment struct {
	Offset, Length int64
	Text           string
}

// Buffer is an in-memory Host backed directly by a []byte, recording every
// annotation and print call for inspection. It is the "UI, document model,
// undo/redo" Non-goal reduced to the minimum needed to drive and test the
// interpreter without a surrounding hex editor.
type Buffer struct {
	Data      []byte
	DataTypes []DataType
	Comments  []Comment
	Prints    []string

	// Yielder, if set, is called by Yield instead of the no-op default —
	// tests use this to simulate cancellation (§8's yield/cancellation
	// scenarios) or to count yields without a real event loop.
	Yielder func() error
}

// NewBuffer returns a Buffer over data. The caller retains ownership of
// data; Buffer never writes to it (§1: "the interpreter never mutates the
// backing buffer's contents").
func NewBuffer(data []byte) *Buffer { return &Buffer{Data: data} }

var _ Host = (*Buffer)(nil)

func (b *Buffer) SetDataType(offset, length int64, code string) error {
	b.DataTypes = append(b.DataTypes, DataType{Offset: offset, Length: length, Code: code})
	return nil
}

func (b *Buffer) SetComment(offset, length int64, text string) error {
	b.Comments = append(b.Comments, Comment{Offset: offset, Length: length, Text: text})
	return nil
}

func (b *Buffer) ReadData(offset, length int64) ([]byte, error) {
	if offset < 0 || offset >= int64(len(b.Data)) {
		return nil, nil
	}
	end := offset + length
	if end > int64(len(b.Data)) {
		end = int64(len(b.Data))
	}
	return b.Data[offset:end], nil
}

func (b *Buffer) FileLength() (int64, error) { return int64(len(b.Data)), nil }

func (b *Buffer) Print(s string) error {
	b.Prints = append(b.Prints, s)
	return nil
}

func (b *Buffer) Yield() error {
	if b.Yielder != nil {
		return b.Yielder()
	}
	return nil
}
