package gff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWireID(t *testing.T) {
	cases := []struct {
		lang   Language
		gender Gender
		id     uint32
	}{
		{LangEnglish, GenderMasculine, 0},
		{LangEnglish, GenderFeminine, 1},
		{LangFrench, GenderMasculine, 2},
		{LangPolish, GenderFeminine, 11},
		{LangKorean, GenderMasculine, 256},
		{LangJapanese, GenderFeminine, 263},
	}

	for _, tc := range cases {
		sub := Substring{Language: tc.lang, Gender: tc.gender}
		assert.Equal(t, tc.id, sub.wireID(), "%s/%s", tc.lang, tc.gender)

		lang, gender := splitWireID(tc.id)
		assert.Equal(t, tc.lang, lang)
		assert.Equal(t, tc.gender, gender)
	}
}

func TestFirstText(t *testing.T) {
	ls := &LocString{StrRef: NoStrRef}
	assert.Empty(t, ls.FirstText())

	ls.Substrings = []Substring{
		{Language: LangEnglish, Text: "first"},
		{Language: LangFrench, Text: "second"},
	}
	assert.Equal(t, "first", ls.FirstText())

	// resolved talk-table text wins over literals
	ls.Resolved = "from table"
	assert.Equal(t, "from table", ls.FirstText())
}

func TestLanguageNames(t *testing.T) {
	assert.Equal(t, "English", LangEnglish.String())
	assert.Equal(t, "Japanese", LangJapanese.String())
	assert.Equal(t, "Language(42)", Language(42).String())
	assert.Equal(t, "Masculine", GenderMasculine.String())
	assert.Equal(t, "Feminine", GenderFeminine.String())
}
