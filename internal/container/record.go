package container

import (
	"fmt"

	"github.com/aurora-tools/go-gff/internal/binary"
)

// Record sizes in bytes.
const (
	StructSize = 12
	FieldSize  = 12
	IndexSize  = 4
)

// NoOffset is the sentinel stored in the data slot of a struct that was
// built in memory rather than parsed from a file.
const NoOffset = 0xFFFFFFFF

// Struct is the on-disk struct record. DataOrOffset is polymorphic on
// FieldCount: unused for zero fields (the as-parsed value is preserved for
// round-trip fidelity), a field-array index for exactly one field, and a
// byte offset into the field-indices array for more than one.
type Struct struct {
	TypeID       uint32
	DataOrOffset uint32
	FieldCount   uint32
}

func readStruct(r *binary.Reader) (Struct, error) {
	var s Struct
	var err error
	if s.TypeID, err = r.ReadUint32(); err != nil {
		return s, fmt.Errorf("%w: reading struct record: %v", ErrParse, err)
	}
	if s.DataOrOffset, err = r.ReadUint32(); err != nil {
		return s, fmt.Errorf("%w: reading struct record: %v", ErrParse, err)
	}
	if s.FieldCount, err = r.ReadUint32(); err != nil {
		return s, fmt.Errorf("%w: reading struct record: %v", ErrParse, err)
	}
	return s, nil
}

func (s Struct) write(w *binary.Writer) error {
	return w.WriteUint32Slice([]uint32{s.TypeID, s.DataOrOffset, s.FieldCount})
}

// Field is the on-disk field record. For inline kinds (Byte through Int,
// and Float) DataOrOffset holds the value's bit pattern directly. For
// complex kinds it is an offset into the field-data heap, a struct-array
// index (Struct) or a byte offset into the list-indices array (List).
type Field struct {
	Type         FieldType
	LabelIndex   uint32
	DataOrOffset uint32
}

func readField(r *binary.Reader) (Field, error) {
	var f Field
	raw, err := r.ReadUint32()
	if err != nil {
		return f, fmt.Errorf("%w: reading field record: %v", ErrParse, err)
	}
	if f.Type, err = ParseFieldType(raw); err != nil {
		return f, err
	}
	if f.LabelIndex, err = r.ReadUint32(); err != nil {
		return f, fmt.Errorf("%w: reading field record: %v", ErrParse, err)
	}
	if f.DataOrOffset, err = r.ReadUint32(); err != nil {
		return f, fmt.Errorf("%w: reading field record: %v", ErrParse, err)
	}
	return f, nil
}

func (f Field) write(w *binary.Writer) error {
	return w.WriteUint32Slice([]uint32{uint32(f.Type), f.LabelIndex, f.DataOrOffset})
}
