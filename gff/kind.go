package gff

// Kind identifies which of the sixteen GFF field kinds a [Field] holds.
// The numeric values match the on-disk field type tags.
type Kind uint8

const (
	KindByte Kind = iota
	KindChar
	KindWord
	KindShort
	KindDWord
	KindInt
	KindDWord64
	KindInt64
	KindFloat
	KindDouble
	KindExoString
	KindResRef
	KindExoLocString
	KindVoid
	KindStruct
	KindList
)

var kindNames = [...]string{
	"Byte", "Char", "Word", "Short", "DWord", "Int", "DWord64", "Int64",
	"Float", "Double", "ExoString", "ResRef", "ExoLocString", "Void",
	"Struct", "List",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
