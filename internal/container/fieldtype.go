package container

import "fmt"

// FieldType is the on-disk tag identifying a field's kind. Valid values
// are 0 through 15; anything else in a file is a parse error.
type FieldType uint32

const (
	TypeByte FieldType = iota
	TypeChar
	TypeWord
	TypeShort
	TypeDWord
	TypeInt
	TypeDWord64
	TypeInt64
	TypeFloat
	TypeDouble
	TypeExoString
	TypeResRef
	TypeExoLocString
	TypeVoid
	TypeStruct
	TypeList
)

var fieldTypeNames = [...]string{
	"Byte", "Char", "Word", "Short", "DWord", "Int", "DWord64", "Int64",
	"Float", "Double", "ExoString", "ResRef", "ExoLocString", "Void",
	"Struct", "List",
}

// ParseFieldType validates a raw on-disk tag.
func ParseFieldType(raw uint32) (FieldType, error) {
	if raw > uint32(TypeList) {
		return 0, fmt.Errorf("%w: field type tag %d out of range", ErrParse, raw)
	}
	return FieldType(raw), nil
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint32(t))
}

// Complex reports whether the field's payload cannot be represented in the
// record's 4-byte data slot and lives elsewhere (heap, struct array or
// list-indices array).
func (t FieldType) Complex() bool {
	switch t {
	case TypeByte, TypeChar, TypeWord, TypeShort, TypeDWord, TypeInt, TypeFloat:
		return false
	default:
		return true
	}
}
