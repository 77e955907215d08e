package container

import (
	"fmt"

	"github.com/aurora-tools/go-gff/internal/binary"
	"github.com/aurora-tools/go-gff/internal/codepage"
)

// LabelSize is the fixed width of a label slot.
const LabelSize = 16

// Label is a 16-byte interned field name: Windows-1252 text, left-justified
// and null-padded. A slot with no null byte carries a full 16-character name.
type Label [LabelSize]byte

// MakeLabel encodes a string into a label slot. Strings that encode to more
// than 16 bytes, or that fall outside the legacy codepage, are rejected.
func MakeLabel(s string) (Label, error) {
	var l Label
	buf, err := codepage.EncodeFixed(s, LabelSize)
	if err != nil {
		return l, fmt.Errorf("%w: %v", ErrBadLabel, err)
	}
	copy(l[:], buf)
	return l, nil
}

// String decodes the label's text, trimming the null padding.
func (l Label) String() string {
	return codepage.DecodeTrimmed(l[:])
}

func readLabel(r *binary.Reader) (Label, error) {
	var l Label
	buf, err := r.ReadBytes(LabelSize)
	if err != nil {
		return l, fmt.Errorf("%w: reading label: %v", ErrParse, err)
	}
	copy(l[:], buf)
	return l, nil
}

// LabelTable interns labels for writing. Identical labels share one table
// entry; indices are assigned in first-seen order, which is what keeps an
// unmodified read-then-write byte-exact.
type LabelTable struct {
	labels  []Label
	indices map[Label]uint32
}

// NewLabelTable creates an empty intern table.
func NewLabelTable() *LabelTable {
	return &LabelTable{indices: make(map[Label]uint32)}
}

// Intern returns the table index for the label, adding it on first sight.
func (t *LabelTable) Intern(l Label) uint32 {
	if idx, ok := t.indices[l]; ok {
		return idx
	}
	idx := uint32(len(t.labels))
	t.labels = append(t.labels, l)
	t.indices[l] = idx
	return idx
}

// Len returns the number of distinct labels interned.
func (t *LabelTable) Len() int {
	return len(t.labels)
}

// Labels returns the interned labels in index order.
func (t *LabelTable) Labels() []Label {
	return t.labels
}
