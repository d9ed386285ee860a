package host

// Adapter wraps a Host and applies a constant SelectionOff to every offset,
// per §4.5: "applying a constant selection_off base to all offsets so the
// template may be executed against a sub-range of the document."
type Adapter struct {
	Host         Host
	SelectionOff int64
}

var _ Host = (*Adapter)(nil)

func (a *Adapter) SetDataType(offset, length int64, code string) error {
	return a.Host.SetDataType(offset+a.SelectionOff, length, code)
}

func (a *Adapter) SetComment(offset, length int64, text string) error {
	return a.Host.SetComment(offset+a.SelectionOff, length, text)
}

func (a *Adapter) ReadData(offset, length int64) ([]byte, error) {
	return a.Host.ReadData(offset+a.SelectionOff, length)
}

// FileLength is not offset: it reports the full document length, and the
// interpreter is responsible for bounding reads to the selection if that
// is a meaningful constraint for the embedder; §4.5 only requires the
// offset base to shift, not the reported length.
func (a *Adapter) FileLength() (int64, error) { return a.Host.FileLength() }

func (a *Adapter) Print(s string) error { return a.Host.Print(s) }

func (a *Adapter) Yield() error { return a.Host.Yield() }
