package types

import (
	"encoding/binary"
	"math"
)

// ByteReader is the minimal slice of the Host Interface a FileBacked cell
// needs to lazily decode its value: read_data, per §6.
type ByteReader interface {
	ReadData(offset, length int64) ([]byte, error)
}

// Cell is the polymorphic get()/set() storage cell of §3's "Value" data
// model entry (named Cell here to avoid clashing with this package's own
// Value, the decoded runtime representation a Cell's Get returns).
type Cell interface {
	// Get returns the cell's current decoded value.
	Get() (Value, error)
	// Set overwrites the cell's value, or fails if the cell's storage
	// discipline forbids it.
	Set(Value) error
	// Desc returns the cell's static type.
	Desc() *TypeDescriptor
}

// ConstantCell holds an immutable in-memory value: literals and expression
// results. Set always fails with ErrAssignConstant.
type ConstantCell struct {
	D *TypeDescriptor
	V Value
}

func NewConstantCell(d *TypeDescriptor, v Value) *ConstantCell { return &ConstantCell{D: d, V: v} }

func (c *ConstantCell) Get() (Value, error)  { return c.V, nil }
func (c *ConstantCell) Set(Value) error      { return ErrAssignConstant }
func (c *ConstantCell) Desc() *TypeDescriptor { return c.D }

// MutableCell holds a read/write in-memory value: local variables declared
// with "local TYPE NAME".
type MutableCell struct {
	D *TypeDescriptor
	V Value
}

func NewMutableCell(d *TypeDescriptor, v Value) *MutableCell { return &MutableCell{D: d, V: v} }

func (c *MutableCell) Get() (Value, error) { return c.V, nil }
func (c *MutableCell) Set(v Value) error {
	c.V = v
	return nil
}
func (c *MutableCell) Desc() *TypeDescriptor { return c.D }

// FileBackedCell lazily decodes `D.Length` bytes at a fixed offset of the
// target buffer on every Get, through a ByteReader, so a re-read always
// reflects the buffer's current contents (§9: "a straight by-value copy
// would break observable semantics").
type FileBackedCell struct {
	D         *TypeDescriptor
	Host      ByteReader
	Offset    int64
	BigEndian bool
}

func NewFileBackedCell(d *TypeDescriptor, host ByteReader, offset int64, bigEndian bool) *FileBackedCell {
	return &FileBackedCell{D: d, Host: host, Offset: offset, BigEndian: bigEndian}
}

func (c *FileBackedCell) Desc() *TypeDescriptor { return c.D }

func (c *FileBackedCell) Set(Value) error { return ErrAssignFileBacked }

func (c *FileBackedCell) Get() (Value, error) {
	b, err := c.Host.ReadData(c.Offset, int64(c.D.Length))
	if err != nil {
		return nil, err
	}
	if len(b) < c.D.Length {
		return nil, ErrEndOfBuffer
	}

	order := byteOrder(c.BigEndian)
	switch {
	case c.D.Kind == FloatKind && c.D.Length == 4:
		return Float{Desc: c.D, V: float64(math.Float32frombits(order.Uint32(b)))}, nil
	case c.D.Kind == FloatKind && c.D.Length == 8:
		return Float{Desc: c.D, V: math.Float64frombits(order.Uint64(b))}, nil
	default:
		return Int{Desc: c.D, V: decodeInt(b, order, c.D.Signed)}, nil
	}
}

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// decodeInt decodes b (1, 2, 4, or 8 bytes) as a signed or unsigned integer
// in the given byte order, sign-extending to int64.
func decodeInt(b []byte, order binary.ByteOrder, signed bool) int64 {
	var u uint64
	switch len(b) {
	case 1:
		u = uint64(b[0])
	case 2:
		u = uint64(order.Uint16(b))
	case 4:
		u = uint64(order.Uint32(b))
	case 8:
		u = order.Uint64(b)
	}
	if !signed {
		return int64(u)
	}
	switch len(b) {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}
