package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aurora-tools/go-gff/internal/binary"
	"github.com/aurora-tools/go-gff/internal/codepage"
)

// Container holds the six sections of a GFF file in their flat on-disk
// form, plus the header that locates them.
type Container struct {
	Header       Header
	Structs      []Struct
	Fields       []Field
	Labels       []Label
	FieldData    []byte
	FieldIndices []uint32
	ListIndices  []uint32
}

// New creates an empty container carrying the given header tags, ready to
// be populated by an encoder.
func New(fileType, fileVersion string) *Container {
	return &Container{
		Header: Header{FileType: fileType, FileVersion: fileVersion},
	}
}

// Read parses a complete GFF container from a byte source. The source must
// cover every section the header declares; truncation anywhere is a parse
// error.
func Read(src io.ReaderAt) (*Container, error) {
	r := binary.NewReader(src)

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	c := &Container{Header: h}

	sr := r.At(int64(h.StructOffset))
	c.Structs = make([]Struct, 0, h.StructCount)
	for i := uint32(0); i < h.StructCount; i++ {
		s, err := readStruct(sr)
		if err != nil {
			return nil, err
		}
		c.Structs = append(c.Structs, s)
	}

	fr := r.At(int64(h.FieldOffset))
	c.Fields = make([]Field, 0, h.FieldCount)
	for i := uint32(0); i < h.FieldCount; i++ {
		f, err := readField(fr)
		if err != nil {
			return nil, err
		}
		c.Fields = append(c.Fields, f)
	}

	lr := r.At(int64(h.LabelOffset))
	c.Labels = make([]Label, 0, h.LabelCount)
	for i := uint32(0); i < h.LabelCount; i++ {
		l, err := readLabel(lr)
		if err != nil {
			return nil, err
		}
		c.Labels = append(c.Labels, l)
	}

	c.FieldData, err = r.At(int64(h.FieldDataOffset)).ReadBytes(int(h.FieldDataCount))
	if err != nil {
		return nil, fmt.Errorf("%w: reading field data: %v", ErrParse, err)
	}

	c.FieldIndices, err = r.At(int64(h.FieldIndicesOffset)).ReadUint32Slice(int(h.FieldIndicesCount / IndexSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading field indices: %v", ErrParse, err)
	}

	c.ListIndices, err = r.At(int64(h.ListIndicesOffset)).ReadUint32Slice(int(h.ListIndicesCount / IndexSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading list indices: %v", ErrParse, err)
	}

	return c, nil
}

// WriteTo emits the container in the canonical section order. The header's
// offsets and counts are written as-is; call Finalize first when the
// container was built by an encoder.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	bw := binary.NewWriter(w)

	fail := func(what string, err error) (int64, error) {
		return bw.Written(), fmt.Errorf("%w: %s: %v", ErrWrite, what, err)
	}

	if err := c.Header.write(bw); err != nil {
		return fail("header", err)
	}
	for _, s := range c.Structs {
		if err := s.write(bw); err != nil {
			return fail("struct records", err)
		}
	}
	for _, f := range c.Fields {
		if err := f.write(bw); err != nil {
			return fail("field records", err)
		}
	}
	for _, l := range c.Labels {
		if err := bw.WriteBytes(l[:]); err != nil {
			return fail("labels", err)
		}
	}
	if err := bw.WriteBytes(c.FieldData); err != nil {
		return fail("field data", err)
	}
	if err := bw.WriteUint32Slice(c.FieldIndices); err != nil {
		return fail("field indices", err)
	}
	if err := bw.WriteUint32Slice(c.ListIndices); err != nil {
		return fail("list indices", err)
	}
	return bw.Written(), nil
}

// Finalize recomputes the header counts and section offsets from the
// current section contents.
func (c *Container) Finalize() {
	h := &c.Header
	h.StructCount = uint32(len(c.Structs))
	h.FieldCount = uint32(len(c.Fields))
	h.LabelCount = uint32(len(c.Labels))
	h.FieldDataCount = uint32(len(c.FieldData))
	h.FieldIndicesCount = uint32(len(c.FieldIndices)) * IndexSize
	h.ListIndicesCount = uint32(len(c.ListIndices)) * IndexSize
	h.computeOffsets()
}

// FieldAt resolves the i'th field of a struct record. It returns nil with
// no error when i is out of range. For single-field structs the record's
// data slot is itself the field-array index; for multi-field structs it is
// a byte offset into the field-indices array and must be 4-byte aligned.
func (c *Container) FieldAt(s Struct, i uint32) (*Field, error) {
	if i >= s.FieldCount {
		return nil, nil
	}

	var fieldIndex uint32
	if s.FieldCount == 1 {
		fieldIndex = s.DataOrOffset
	} else {
		if s.DataOrOffset%IndexSize != 0 {
			return nil, fmt.Errorf("%w: struct data offset %d", ErrAlignment, s.DataOrOffset)
		}
		entry := s.DataOrOffset/IndexSize + i
		if entry >= uint32(len(c.FieldIndices)) {
			return nil, fmt.Errorf("%w: field index entry %d out of range (%d entries)",
				ErrParse, entry, len(c.FieldIndices))
		}
		fieldIndex = c.FieldIndices[entry]
	}

	if fieldIndex >= uint32(len(c.Fields)) {
		return nil, fmt.Errorf("%w: field index %d out of range (%d fields)",
			ErrParse, fieldIndex, len(c.Fields))
	}
	return &c.Fields[fieldIndex], nil
}

// Label returns the decoded label text for a field record.
func (c *Container) Label(f Field) (string, error) {
	if f.LabelIndex >= uint32(len(c.Labels)) {
		return "", fmt.Errorf("%w: label index %d out of range (%d labels)",
			ErrParse, f.LabelIndex, len(c.Labels))
	}
	return c.Labels[f.LabelIndex].String(), nil
}

// heapBytes bounds-checks a heap range.
func (c *Container) heapBytes(off uint32, n int) ([]byte, error) {
	end := int64(off) + int64(n)
	if end > int64(len(c.FieldData)) {
		return nil, fmt.Errorf("%w: field data range [%d:%d) exceeds heap size %d",
			ErrParse, off, end, len(c.FieldData))
	}
	return c.FieldData[off:end], nil
}

// heapReader positions a reader over the heap at the given offset.
func (c *Container) heapReader(off uint32) (*binary.Reader, error) {
	if int64(off) > int64(len(c.FieldData)) {
		return nil, fmt.Errorf("%w: field data offset %d exceeds heap size %d",
			ErrParse, off, len(c.FieldData))
	}
	return binary.NewReader(bytes.NewReader(c.FieldData)).At(int64(off)), nil
}

// HeapUint64 reads an 8-byte value from the heap.
func (c *Container) HeapUint64(off uint32) (uint64, error) {
	r, err := c.heapReader(off)
	if err != nil {
		return 0, err
	}
	v, err := r.ReadUint64()
	if err != nil {
		return 0, fmt.Errorf("%w: reading 8-byte value: %v", ErrParse, err)
	}
	return v, nil
}

// HeapExoString reads a length-prefixed string from the heap.
func (c *Container) HeapExoString(off uint32) (string, error) {
	r, err := c.heapReader(off)
	if err != nil {
		return "", err
	}
	size, err := r.ReadUint32()
	if err != nil {
		return "", fmt.Errorf("%w: reading string length: %v", ErrParse, err)
	}
	buf, err := r.ReadBytes(int(size))
	if err != nil {
		return "", fmt.Errorf("%w: reading string of %d bytes: %v", ErrParse, size, err)
	}
	return codepage.Decode(buf), nil
}

// HeapResRef reads a resource reference from the heap: a single length byte
// (clamped to 16) followed by the name.
func (c *Container) HeapResRef(off uint32) (string, error) {
	r, err := c.heapReader(off)
	if err != nil {
		return "", err
	}
	size, err := r.ReadUint8()
	if err != nil {
		return "", fmt.Errorf("%w: reading resref length: %v", ErrParse, err)
	}
	if size > ResRefMaxLen {
		size = ResRefMaxLen
	}
	buf, err := r.ReadBytes(int(size))
	if err != nil {
		return "", fmt.Errorf("%w: reading resref of %d bytes: %v", ErrParse, size, err)
	}
	return codepage.Decode(buf), nil
}

// HeapVoid reads a length-prefixed opaque blob from the heap.
func (c *Container) HeapVoid(off uint32) ([]byte, error) {
	r, err := c.heapReader(off)
	if err != nil {
		return nil, err
	}
	size, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading void length: %v", ErrParse, err)
	}
	buf, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("%w: reading void of %d bytes: %v", ErrParse, size, err)
	}
	return append([]byte(nil), buf...), nil
}

// ResRefMaxLen is the maximum length of a resource reference name.
const ResRefMaxLen = 16

// LocSubstring is one language/gender override carried by a localized
// string, with its packed wire id (language*2 + gender).
type LocSubstring struct {
	ID   uint32
	Text string
}

// LocStringData is the raw heap form of a localized string.
type LocStringData struct {
	StrRef     uint32
	Substrings []LocSubstring
}

// HeapLocString reads a localized string from the heap: a total byte size,
// the external string reference, and a run of (id, length, bytes)
// substrings.
func (c *Container) HeapLocString(off uint32) (LocStringData, error) {
	var out LocStringData

	r, err := c.heapReader(off)
	if err != nil {
		return out, err
	}
	if _, err = r.ReadUint32(); err != nil { // total size, implied by contents
		return out, fmt.Errorf("%w: reading locstring size: %v", ErrParse, err)
	}
	if out.StrRef, err = r.ReadUint32(); err != nil {
		return out, fmt.Errorf("%w: reading locstring strref: %v", ErrParse, err)
	}
	count, err := r.ReadUint32()
	if err != nil {
		return out, fmt.Errorf("%w: reading locstring count: %v", ErrParse, err)
	}

	out.Substrings = make([]LocSubstring, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadUint32()
		if err != nil {
			return out, fmt.Errorf("%w: reading substring id: %v", ErrParse, err)
		}
		size, err := r.ReadUint32()
		if err != nil {
			return out, fmt.Errorf("%w: reading substring length: %v", ErrParse, err)
		}
		buf, err := r.ReadBytes(int(size))
		if err != nil {
			return out, fmt.Errorf("%w: reading substring of %d bytes: %v", ErrParse, size, err)
		}
		out.Substrings = append(out.Substrings, LocSubstring{ID: id, Text: codepage.Decode(buf)})
	}
	return out, nil
}
