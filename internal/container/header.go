package container

import (
	"fmt"
	"unicode/utf8"

	"github.com/aurora-tools/go-gff/internal/binary"
)

// HeaderSize is the fixed size of a GFF header: two 4-char tags followed by
// six (offset, count) pairs of unsigned 32-bit integers.
const HeaderSize = 8 + 6*8

// Header locates the six sections of a GFF file. Sections are laid out
// contiguously after the header in the order: structs, fields, labels,
// field data, field indices, list indices. Each offset is in bytes from the
// start of the file. Struct, field and label counts are record counts;
// the field-data, field-indices and list-indices counts are byte counts.
type Header struct {
	FileType    string // 4-char resource type tag, e.g. "IFO "
	FileVersion string // 4-char format version tag, e.g. "V3.2"

	StructOffset uint32
	StructCount  uint32

	FieldOffset uint32
	FieldCount  uint32

	LabelOffset uint32
	LabelCount  uint32

	FieldDataOffset uint32
	FieldDataCount  uint32

	FieldIndicesOffset uint32
	FieldIndicesCount  uint32

	ListIndicesOffset uint32
	ListIndicesCount  uint32
}

func readHeaderTag(r *binary.Reader) (string, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return "", fmt.Errorf("%w: reading header tag: %v", ErrParse, err)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: header tag %v is not valid text", ErrParse, buf)
	}
	return string(buf), nil
}

func readHeader(r *binary.Reader) (Header, error) {
	var h Header
	var err error

	if h.FileType, err = readHeaderTag(r); err != nil {
		return h, err
	}
	if h.FileVersion, err = readHeaderTag(r); err != nil {
		return h, err
	}

	fields := []*uint32{
		&h.StructOffset, &h.StructCount,
		&h.FieldOffset, &h.FieldCount,
		&h.LabelOffset, &h.LabelCount,
		&h.FieldDataOffset, &h.FieldDataCount,
		&h.FieldIndicesOffset, &h.FieldIndicesCount,
		&h.ListIndicesOffset, &h.ListIndicesCount,
	}
	for _, f := range fields {
		if *f, err = r.ReadUint32(); err != nil {
			return h, fmt.Errorf("%w: reading header: %v", ErrParse, err)
		}
	}
	return h, nil
}

func (h *Header) write(w *binary.Writer) error {
	if len(h.FileType) != 4 || len(h.FileVersion) != 4 {
		return fmt.Errorf("%w: header tags %q/%q must be exactly 4 bytes",
			ErrWrite, h.FileType, h.FileVersion)
	}
	if err := w.WriteBytes([]byte(h.FileType)); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte(h.FileVersion)); err != nil {
		return err
	}
	return w.WriteUint32Slice([]uint32{
		h.StructOffset, h.StructCount,
		h.FieldOffset, h.FieldCount,
		h.LabelOffset, h.LabelCount,
		h.FieldDataOffset, h.FieldDataCount,
		h.FieldIndicesOffset, h.FieldIndicesCount,
		h.ListIndicesOffset, h.ListIndicesCount,
	})
}

// computeOffsets fills in the section offsets as the running prefix sum of
// the section byte sizes, starting immediately after the fixed header.
// The counts must already be populated.
func (h *Header) computeOffsets() {
	h.StructOffset = HeaderSize
	h.FieldOffset = h.StructOffset + h.StructCount*StructSize
	h.LabelOffset = h.FieldOffset + h.FieldCount*FieldSize
	h.FieldDataOffset = h.LabelOffset + h.LabelCount*LabelSize
	h.FieldIndicesOffset = h.FieldDataOffset + h.FieldDataCount
	h.ListIndicesOffset = h.FieldIndicesOffset + h.FieldIndicesCount
}
