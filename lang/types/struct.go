package types

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Struct is a bound struct instance: an ordered mapping from member name to
// its Cell, preserving declaration order (§3: "Struct value ... preserves
// declaration order"). The lookup table itself is a swiss.Map, the same
// hash table the teacher uses for its own Map value, since member lookup
// (".name" path resolution, §4.4.4) is on the hot path of every member
// access the interpreter performs.
type Struct struct {
	Desc   *TypeDescriptor
	names  []string
	fields *swiss.Map[string, Cell]
	frozen bool
}

var (
	_ Value       = (*Struct)(nil)
	_ HasAttrs    = (*Struct)(nil)
	_ HasSetField = (*Struct)(nil)
)

func NewStruct(desc *TypeDescriptor) *Struct {
	return &Struct{Desc: desc, fields: swiss.NewMap[string, Cell](8)}
}

// Define adds a member to the struct, in the order Define is called. It is
// only ever called while the struct's body is being executed; redefinition
// is rejected by the interpreter before Define is reached (RedefinedVariable).
func (s *Struct) Define(name string, c Cell) {
	s.names = append(s.names, name)
	s.fields.Put(name, c)
}

func (s *Struct) String() string { return fmt.Sprintf("<struct %s>", s.Desc.StructName) }
func (s *Struct) Type() string   { return s.Desc.String() }
func (s *Struct) Truth() Bool    { return True }

func (s *Struct) Freeze() {
	s.frozen = true
	for _, name := range s.names {
		c, ok := s.fields.Get(name)
		if !ok {
			continue
		}
		if v, err := c.Get(); err == nil {
			v.Freeze()
		}
	}
}

// Attr implements §4.4.4's path dereferencing: ".name requires struct base
// and a known member".
func (s *Struct) Attr(name string) (Value, error) {
	c, ok := s.fields.Get(name)
	if !ok {
		return nil, ErrNoSuchMember
	}
	return c.Get()
}

func (s *Struct) AttrNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Struct) SetField(name string, v Value) error {
	c, ok := s.fields.Get(name)
	if !ok {
		return ErrNoSuchMember
	}
	return c.Set(v)
}

// Cell returns the member's underlying storage cell directly, bypassing a
// Get/decode round trip; the interpreter uses this when a path continues
// past this member (e.g. "a.b.c" resolving "a.b" only to index further).
func (s *Struct) Cell(name string) (Cell, bool) {
	return s.fields.Get(name)
}
