package container

import (
	"fmt"

	"github.com/aurora-tools/go-gff/internal/binary"
	"github.com/aurora-tools/go-gff/internal/codepage"
)

// Append helpers used by the tree encoder. Each returns the position the
// payload was placed at, captured before the append, which is exactly the
// value the referring record stores in its data slot.

// AppendHeapUint64 appends an 8-byte value to the field-data heap.
func (c *Container) AppendHeapUint64(v uint64) uint32 {
	off := uint32(len(c.FieldData))
	c.FieldData = binary.AppendUint64(c.FieldData, v)
	return off
}

// AppendExoString appends a length-prefixed string to the field-data heap.
func (c *Container) AppendExoString(s string) (uint32, error) {
	enc, err := codepage.Encode(s)
	if err != nil {
		return 0, fmt.Errorf("%w: string %q: %v", ErrWrite, s, err)
	}
	off := uint32(len(c.FieldData))
	c.FieldData = binary.AppendUint32(c.FieldData, uint32(len(enc)))
	c.FieldData = append(c.FieldData, enc...)
	return off, nil
}

// AppendResRef appends a resource reference to the field-data heap.
// Names longer than 16 bytes are rejected.
func (c *Container) AppendResRef(s string) (uint32, error) {
	enc, err := codepage.Encode(s)
	if err != nil {
		return 0, fmt.Errorf("%w: resref %q: %v", ErrWrite, s, err)
	}
	if len(enc) > ResRefMaxLen {
		return 0, fmt.Errorf("%w: resref %q exceeds %d bytes", ErrWrite, s, ResRefMaxLen)
	}
	off := uint32(len(c.FieldData))
	c.FieldData = append(c.FieldData, uint8(len(enc)))
	c.FieldData = append(c.FieldData, enc...)
	return off, nil
}

// AppendVoid appends a length-prefixed opaque blob to the field-data heap.
func (c *Container) AppendVoid(data []byte) uint32 {
	off := uint32(len(c.FieldData))
	c.FieldData = binary.AppendUint32(c.FieldData, uint32(len(data)))
	c.FieldData = append(c.FieldData, data...)
	return off
}

// AppendLocString appends a localized string to the field-data heap. The
// leading total size counts everything after the size slot itself.
func (c *Container) AppendLocString(ls LocStringData) (uint32, error) {
	encoded := make([][]byte, len(ls.Substrings))
	total := uint32(8) // strref + count
	for i, sub := range ls.Substrings {
		enc, err := codepage.Encode(sub.Text)
		if err != nil {
			return 0, fmt.Errorf("%w: locstring substring %q: %v", ErrWrite, sub.Text, err)
		}
		encoded[i] = enc
		total += 8 + uint32(len(enc)) // id + length + bytes
	}

	off := uint32(len(c.FieldData))
	c.FieldData = binary.AppendUint32(c.FieldData, total)
	c.FieldData = binary.AppendUint32(c.FieldData, ls.StrRef)
	c.FieldData = binary.AppendUint32(c.FieldData, uint32(len(ls.Substrings)))
	for i, sub := range ls.Substrings {
		c.FieldData = binary.AppendUint32(c.FieldData, sub.ID)
		c.FieldData = binary.AppendUint32(c.FieldData, uint32(len(encoded[i])))
		c.FieldData = append(c.FieldData, encoded[i]...)
	}
	return off, nil
}

// ReserveFieldIndices reserves a contiguous block of n entries in the
// field-indices array and returns the block's starting entry index. The
// block must be reserved before the member fields are stored, because
// storing a nested struct reserves blocks of its own.
func (c *Container) ReserveFieldIndices(n int) uint32 {
	block := uint32(len(c.FieldIndices))
	c.FieldIndices = append(c.FieldIndices, make([]uint32, n)...)
	return block
}

// SetFieldIndex writes a stored field's array index into a reserved block.
func (c *Container) SetFieldIndex(block uint32, i int, fieldIndex uint32) {
	c.FieldIndices[block+uint32(i)] = fieldIndex
}

// ReserveListIndices reserves a list block: one entry for the struct count
// followed by n entries for struct indices. It returns the block's starting
// entry index.
func (c *Container) ReserveListIndices(n int) uint32 {
	block := uint32(len(c.ListIndices))
	c.ListIndices = append(c.ListIndices, uint32(n))
	c.ListIndices = append(c.ListIndices, make([]uint32, n)...)
	return block
}

// SetListIndex writes a stored struct's array index into a reserved list block.
func (c *Container) SetListIndex(block uint32, i int, structIndex uint32) {
	c.ListIndices[block+1+uint32(i)] = structIndex
}

// AddStruct appends a struct record and returns its array index.
func (c *Container) AddStruct(s Struct) uint32 {
	idx := uint32(len(c.Structs))
	c.Structs = append(c.Structs, s)
	return idx
}

// AddField appends a field record and returns its array index.
func (c *Container) AddField(f Field) uint32 {
	idx := uint32(len(c.Fields))
	c.Fields = append(c.Fields, f)
	return idx
}

// ListAt resolves a List field's data slot: a byte offset into the
// list-indices array whose first entry is the struct count, followed by
// that many struct-array indices.
func (c *Container) ListAt(off uint32) ([]uint32, error) {
	if off%IndexSize != 0 {
		return nil, fmt.Errorf("%w: list data offset %d", ErrAlignment, off)
	}
	entry := off / IndexSize
	if entry >= uint32(len(c.ListIndices)) {
		return nil, fmt.Errorf("%w: list index entry %d out of range (%d entries)",
			ErrParse, entry, len(c.ListIndices))
	}
	count := c.ListIndices[entry]
	start := entry + 1
	if int64(start)+int64(count) > int64(len(c.ListIndices)) {
		return nil, fmt.Errorf("%w: list of %d structs at entry %d exceeds %d entries",
			ErrParse, count, entry, len(c.ListIndices))
	}
	return c.ListIndices[start : start+count], nil
}
