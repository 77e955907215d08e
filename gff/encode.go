package gff

import (
	"fmt"

	"github.com/aurora-tools/go-gff/internal/container"
)

// encoder rebuilds the flat container from the resolved tree. Records are
// appended in the same order the original encoder produced them (record
// first, data slot patched after the payload is stored), which is what
// makes an unmodified read-then-write byte-exact.
type encoder struct {
	c      *container.Container
	labels *container.LabelTable
}

// toContainer encodes the current tree into a fresh container.
func (g *Gff) toContainer() (*container.Container, error) {
	if g.Root == nil {
		return nil, fmt.Errorf("%w: document has no root struct", ErrWrite)
	}

	enc := &encoder{
		c:      container.New(g.FileType, g.FileVersion),
		labels: container.NewLabelTable(),
	}

	if _, err := enc.storeStruct(g.Root); err != nil {
		return nil, err
	}

	enc.c.Labels = enc.labels.Labels()
	enc.c.Finalize()
	return enc.c, nil
}

// storeStruct appends the struct record, stores its fields post-order and
// patches the record's data slot. Zero-field structs echo the value their
// on-disk record carried at parse time; structs built in memory carry the
// NoOffset sentinel.
func (e *encoder) storeStruct(s *Struct) (uint32, error) {
	fields := s.Fields()

	idx := e.c.AddStruct(container.Struct{
		TypeID:     s.ID,
		FieldCount: uint32(len(fields)),
	})

	var slot uint32
	switch len(fields) {
	case 0:
		slot = s.origOffset
	case 1:
		fieldIdx, err := e.storeField(fields[0])
		if err != nil {
			return 0, err
		}
		slot = fieldIdx
	default:
		block := e.c.ReserveFieldIndices(len(fields))
		for i, cell := range fields {
			fieldIdx, err := e.storeField(cell)
			if err != nil {
				return 0, err
			}
			e.c.SetFieldIndex(block, i, fieldIdx)
		}
		slot = block * container.IndexSize
	}

	e.c.Structs[idx].DataOrOffset = slot
	return idx, nil
}

// storeField interns the label, appends the field record, stores the
// payload and patches the record's data slot. It returns the field's array
// index.
func (e *encoder) storeField(cell *Cell) (uint32, error) {
	label, f := cell.Get()

	lbl, err := container.MakeLabel(label)
	if err != nil {
		return 0, err
	}

	idx := e.c.AddField(container.Field{
		Type:       container.FieldType(f.Kind()),
		LabelIndex: e.labels.Intern(lbl),
	})

	slot, err := e.storePayload(f)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", label, err)
	}

	e.c.Fields[idx].DataOrOffset = slot
	return idx, nil
}

// storePayload computes a field's data slot: inline kinds pack the value's
// bit pattern, heap kinds append to the field-data heap and return the
// offset before the append, Struct and List recurse.
func (e *encoder) storePayload(f Field) (uint32, error) {
	switch f.Kind() {
	case KindByte, KindChar, KindWord, KindShort, KindDWord, KindInt, KindFloat:
		return f.inlineBits(), nil

	case KindDWord64:
		v, _ := f.DWord64()
		return e.c.AppendHeapUint64(v), nil
	case KindInt64:
		v, _ := f.Int64()
		return e.c.AppendHeapUint64(uint64(v)), nil
	case KindDouble:
		return e.c.AppendHeapUint64(f.num), nil

	case KindExoString:
		s, _ := f.ExoString()
		return e.c.AppendExoString(s)
	case KindResRef:
		s, _ := f.ResRef()
		return e.c.AppendResRef(s)
	case KindVoid:
		data, _ := f.Void()
		return e.c.AppendVoid(data), nil

	case KindExoLocString:
		ls, _ := f.ExoLocString()
		raw := container.LocStringData{StrRef: ls.StrRef}
		for _, sub := range ls.Substrings {
			raw.Substrings = append(raw.Substrings, container.LocSubstring{
				ID:   sub.wireID(),
				Text: sub.Text,
			})
		}
		return e.c.AppendLocString(raw)

	case KindStruct:
		sub, _ := f.Struct()
		if sub == nil {
			return 0, fmt.Errorf("%w: struct field holds no struct", ErrWrite)
		}
		return e.storeStruct(sub)

	case KindList:
		list, _ := f.List()
		block := e.c.ReserveListIndices(len(list))
		for i, sub := range list {
			structIdx, err := e.storeStruct(sub)
			if err != nil {
				return 0, err
			}
			e.c.SetListIndex(block, i, structIdx)
		}
		return block * container.IndexSize, nil
	}

	return 0, fmt.Errorf("%w: unknown field kind %d", ErrWrite, f.Kind())
}
