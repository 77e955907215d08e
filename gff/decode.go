package gff

import (
	"fmt"

	"github.com/aurora-tools/go-gff/internal/container"
)

// fromContainer materializes the flat container into a resolved tree,
// consulting the resolver for localized strings when one is supplied.
func fromContainer(c *container.Container, res StringResolver) (*Gff, error) {
	if len(c.Structs) == 0 {
		return nil, fmt.Errorf("%w: no structs, missing root", ErrParse)
	}

	root, err := resolveStruct(c, c.Structs[0], res)
	if err != nil {
		return nil, err
	}

	return &Gff{
		FileType:    c.Header.FileType,
		FileVersion: c.Header.FileVersion,
		Root:        root,
	}, nil
}

func resolveStruct(c *container.Container, rec container.Struct, res StringResolver) (*Struct, error) {
	s := &Struct{ID: rec.TypeID, origOffset: rec.DataOrOffset}

	for i := uint32(0); i < rec.FieldCount; i++ {
		fr, err := c.FieldAt(rec, i)
		if err != nil {
			return nil, err
		}
		label, err := c.Label(*fr)
		if err != nil {
			return nil, err
		}
		f, err := resolveField(c, *fr, res)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", label, err)
		}
		s.AddCell(NewCell(label, f))
	}
	return s, nil
}

func structAt(c *container.Container, index uint32, res StringResolver) (*Struct, error) {
	if index >= uint32(len(c.Structs)) {
		return nil, fmt.Errorf("%w: struct index %d out of range (%d structs)",
			ErrParse, index, len(c.Structs))
	}
	return resolveStruct(c, c.Structs[index], res)
}

// resolveField decodes one field record into its tagged value. Inline kinds
// reinterpret the record's 4-byte data slot; complex kinds follow it into
// the heap, the struct array or the list-indices array.
func resolveField(c *container.Container, fr container.Field, res StringResolver) (Field, error) {
	slot := fr.DataOrOffset

	switch fr.Type {
	case container.TypeByte:
		return ByteField(uint8(slot)), nil
	case container.TypeChar:
		return CharField(slot), nil
	case container.TypeWord:
		return WordField(uint16(slot)), nil
	case container.TypeShort:
		return ShortField(int16(uint16(slot))), nil
	case container.TypeDWord:
		return DWordField(slot), nil
	case container.TypeInt:
		return IntField(int32(slot)), nil
	case container.TypeFloat:
		return Field{kind: KindFloat, num: uint64(slot)}, nil

	case container.TypeDWord64:
		v, err := c.HeapUint64(slot)
		if err != nil {
			return Field{}, err
		}
		return DWord64Field(v), nil
	case container.TypeInt64:
		v, err := c.HeapUint64(slot)
		if err != nil {
			return Field{}, err
		}
		return Int64Field(int64(v)), nil
	case container.TypeDouble:
		v, err := c.HeapUint64(slot)
		if err != nil {
			return Field{}, err
		}
		return Field{kind: KindDouble, num: v}, nil

	case container.TypeExoString:
		s, err := c.HeapExoString(slot)
		if err != nil {
			return Field{}, err
		}
		return ExoStringField(s), nil
	case container.TypeResRef:
		s, err := c.HeapResRef(slot)
		if err != nil {
			return Field{}, err
		}
		return ResRefField(s), nil
	case container.TypeVoid:
		data, err := c.HeapVoid(slot)
		if err != nil {
			return Field{}, err
		}
		return VoidField(data), nil

	case container.TypeExoLocString:
		raw, err := c.HeapLocString(slot)
		if err != nil {
			return Field{}, err
		}
		ls := LocString{StrRef: raw.StrRef}
		for _, sub := range raw.Substrings {
			lang, gender := splitWireID(sub.ID)
			ls.Substrings = append(ls.Substrings, Substring{
				Language: lang,
				Gender:   gender,
				Text:     sub.Text,
			})
		}
		if raw.StrRef != NoStrRef && res != nil {
			text, err := res.Resolve(raw.StrRef)
			if err != nil {
				return Field{}, fmt.Errorf("%w: strref %d: %v", ErrStrRefNotFound, raw.StrRef, err)
			}
			ls.Resolved = text
		}
		return ExoLocStringField(ls), nil

	case container.TypeStruct:
		sub, err := structAt(c, slot, res)
		if err != nil {
			return Field{}, err
		}
		return StructField(sub), nil

	case container.TypeList:
		indices, err := c.ListAt(slot)
		if err != nil {
			return Field{}, err
		}
		list := make([]*Struct, 0, len(indices))
		for _, idx := range indices {
			sub, err := structAt(c, idx, res)
			if err != nil {
				return Field{}, err
			}
			list = append(list, sub)
		}
		return ListField(list), nil
	}

	return Field{}, fmt.Errorf("%w: field type %d", ErrParse, fr.Type)
}
