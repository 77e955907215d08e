package gff

import "fmt"

// NoStrRef is the "no external string" sentinel for a localized string's
// StrRef. A localized string carrying it must never trigger a talk-table
// lookup.
const NoStrRef uint32 = 0xFFFFFFFF

// Language identifies the language of a localized substring. The numeric
// values are the game's language ids.
type Language uint32

const (
	LangEnglish            Language = 0
	LangFrench             Language = 1
	LangGerman             Language = 2
	LangItalian            Language = 3
	LangSpanish            Language = 4
	LangPolish             Language = 5
	LangKorean             Language = 128
	LangChineseTraditional Language = 129
	LangChineseSimplified  Language = 130
	LangJapanese           Language = 131
)

func (l Language) String() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangFrench:
		return "French"
	case LangGerman:
		return "German"
	case LangItalian:
		return "Italian"
	case LangSpanish:
		return "Spanish"
	case LangPolish:
		return "Polish"
	case LangKorean:
		return "Korean"
	case LangChineseTraditional:
		return "ChineseTraditional"
	case LangChineseSimplified:
		return "ChineseSimplified"
	case LangJapanese:
		return "Japanese"
	}
	return fmt.Sprintf("Language(%d)", uint32(l))
}

// Gender selects the masculine or feminine variant of a substring.
type Gender uint32

const (
	GenderMasculine Gender = 0
	GenderFeminine  Gender = 1
)

func (g Gender) String() string {
	if g == GenderFeminine {
		return "Feminine"
	}
	return "Masculine"
}

// Substring is one per-language, per-gender literal override carried by a
// localized string.
type Substring struct {
	Language Language
	Gender   Gender
	Text     string
}

// wireID packs language and gender into the single on-disk substring id.
func (s Substring) wireID() uint32 {
	return uint32(s.Language)*2 + uint32(s.Gender)
}

// splitWireID is the inverse of wireID.
func splitWireID(id uint32) (Language, Gender) {
	return Language(id / 2), Gender(id % 2)
}

// LocString is a localized string: an external talk-table reference plus
// any number of literal substring overrides. Resolved carries the
// talk-table text looked up at decode time; it is display state only and
// is not written back to the file.
type LocString struct {
	StrRef     uint32
	Substrings []Substring
	Resolved   string
}

// FirstText returns a best-effort display string: the resolved talk-table
// text when present, otherwise the first substring.
func (ls *LocString) FirstText() string {
	if ls.Resolved != "" {
		return ls.Resolved
	}
	if len(ls.Substrings) > 0 {
		return ls.Substrings[0].Text
	}
	return ""
}
