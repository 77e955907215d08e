package gff

import "math"

// Field is a tagged value holding exactly one of the sixteen GFF field
// kinds. The zero value is a Byte field of 0. Fields are small and copied
// by value; the nested Struct, List and LocString payloads are shared
// references, which is what lets an editor mutate a subtree through any
// handle to it.
type Field struct {
	kind Kind
	num  uint64
	str  string
	data []byte
	loc  *LocString
	sub  *Struct
	list []*Struct
}

// Kind returns which variant the field holds.
func (f Field) Kind() Kind {
	return f.kind
}

// Constructors, one per kind.

func ByteField(v uint8) Field   { return Field{kind: KindByte, num: uint64(v)} }
func CharField(cp uint32) Field { return Field{kind: KindChar, num: uint64(cp)} }
func WordField(v uint16) Field  { return Field{kind: KindWord, num: uint64(v)} }
func ShortField(v int16) Field {
	return Field{kind: KindShort, num: uint64(uint32(int32(v)))}
}
func DWordField(v uint32) Field { return Field{kind: KindDWord, num: uint64(v)} }
func IntField(v int32) Field    { return Field{kind: KindInt, num: uint64(uint32(v))} }
func DWord64Field(v uint64) Field {
	return Field{kind: KindDWord64, num: v}
}
func Int64Field(v int64) Field { return Field{kind: KindInt64, num: uint64(v)} }
func FloatField(v float32) Field {
	return Field{kind: KindFloat, num: uint64(math.Float32bits(v))}
}
func DoubleField(v float64) Field {
	return Field{kind: KindDouble, num: math.Float64bits(v)}
}
func ExoStringField(s string) Field { return Field{kind: KindExoString, str: s} }
func ResRefField(name string) Field { return Field{kind: KindResRef, str: name} }
func ExoLocStringField(ls LocString) Field {
	return Field{kind: KindExoLocString, loc: &ls}
}
func VoidField(data []byte) Field { return Field{kind: KindVoid, data: data} }
func StructField(s *Struct) Field { return Field{kind: KindStruct, sub: s} }
func ListField(structs []*Struct) Field {
	return Field{kind: KindList, list: structs}
}

// Accessors. Each returns the value and whether the field holds that kind.

func (f Field) Byte() (uint8, bool)  { return uint8(f.num), f.kind == KindByte }
func (f Field) Char() (uint32, bool) { return uint32(f.num), f.kind == KindChar }
func (f Field) Word() (uint16, bool) { return uint16(f.num), f.kind == KindWord }
func (f Field) Short() (int16, bool) { return int16(uint16(f.num)), f.kind == KindShort }
func (f Field) DWord() (uint32, bool) {
	return uint32(f.num), f.kind == KindDWord
}
func (f Field) Int() (int32, bool)     { return int32(uint32(f.num)), f.kind == KindInt }
func (f Field) DWord64() (uint64, bool) { return f.num, f.kind == KindDWord64 }
func (f Field) Int64() (int64, bool)   { return int64(f.num), f.kind == KindInt64 }
func (f Field) Float() (float32, bool) {
	return math.Float32frombits(uint32(f.num)), f.kind == KindFloat
}
func (f Field) Double() (float64, bool) {
	return math.Float64frombits(f.num), f.kind == KindDouble
}
func (f Field) ExoString() (string, bool) { return f.str, f.kind == KindExoString }
func (f Field) ResRef() (string, bool)    { return f.str, f.kind == KindResRef }
func (f Field) ExoLocString() (*LocString, bool) {
	return f.loc, f.kind == KindExoLocString
}
func (f Field) Void() ([]byte, bool)  { return f.data, f.kind == KindVoid }
func (f Field) Struct() (*Struct, bool) { return f.sub, f.kind == KindStruct }
func (f Field) List() ([]*Struct, bool) {
	return f.list, f.kind == KindList
}

// inlineBits returns the 4-byte data slot for the non-complex kinds.
func (f Field) inlineBits() uint32 {
	return uint32(f.num)
}
