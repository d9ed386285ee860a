package types

import "fmt"

// Array is a bound array value: an ordered sequence of element cells, all
// sharing the same element type. Declaring "TYPE NAME[LEN]" at template
// scope produces one FileBacked Cell per element, each one element size
// further into the buffer; "local TYPE NAME[LEN]" produces Mutable cells
// instead.
type Array struct {
	ElemDesc *TypeDescriptor
	Elems    []Cell
	frozen   bool
}

var (
	_ Value       = (*Array)(nil)
	_ Indexable   = (*Array)(nil)
	_ HasSetIndex = (*Array)(nil)
)

func NewArray(elemDesc *TypeDescriptor, elems []Cell) *Array {
	return &Array{ElemDesc: elemDesc, Elems: elems}
}

func (a *Array) String() string { return fmt.Sprintf("<array of %s, len %d>", a.ElemDesc, len(a.Elems)) }
func (a *Array) Type() string   { return a.ElemDesc.String() + "[]" }
func (a *Array) Truth() Bool    { return len(a.Elems) > 0 }
func (a *Array) Len() int       { return len(a.Elems) }

func (a *Array) Freeze() {
	a.frozen = true
	for _, c := range a.Elems {
		if v, err := c.Get(); err == nil {
			v.Freeze()
		}
	}
}

// Index implements §4.4.4's path indexing: "[expr] requires array base and
// an in-range numeric index".
func (a *Array) Index(i int) (Value, error) {
	if i < 0 || i >= len(a.Elems) {
		return nil, ErrOutOfRangeIndex
	}
	return a.Elems[i].Get()
}

func (a *Array) SetIndex(i int, v Value) error {
	if i < 0 || i >= len(a.Elems) {
		return ErrOutOfRangeIndex
	}
	return a.Elems[i].Set(v)
}
