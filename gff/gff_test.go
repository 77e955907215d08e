package gff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora-tools/go-gff/internal/container"
)

// mapResolver is a fixed in-memory talk table for tests.
type mapResolver map[uint32]string

func (m mapResolver) Resolve(strRef uint32) (string, error) {
	text, ok := m[strRef]
	if !ok {
		return "", fmt.Errorf("no entry for %d", strRef)
	}
	return text, nil
}

// buildDoc assembles a document using every field kind, with nesting through
// both a struct field and a list.
func buildDoc() *Gff {
	doc := New("UTC ")
	root := doc.Root

	root.Add("Byte", ByteField(255))
	root.Add("Char", CharField('A'))
	root.Add("Word", WordField(65535))
	root.Add("Short", ShortField(-12345))
	root.Add("DWord", DWordField(0xDEADBEEF))
	root.Add("Int", IntField(-42))
	root.Add("DWord64", DWord64Field(0xDEADBEEFCAFEBABE))
	root.Add("Int64", Int64Field(-1234567890123456789))
	root.Add("Float", FloatField(3.25))
	root.Add("Double", DoubleField(2.718281828459045))
	root.Add("Name", ExoStringField("Hello, GFF"))
	root.Add("TemplateResRef", ResRefField("nw_chicken"))
	root.Add("FirstName", ExoLocStringField(LocString{
		StrRef: NoStrRef,
		Substrings: []Substring{
			{Language: LangEnglish, Gender: GenderMasculine, Text: "Hen"},
			{Language: LangFrench, Gender: GenderFeminine, Text: "Poule"},
		},
	}))
	root.Add("Blob", VoidField([]byte{0x01, 0x02, 0x03}))

	child := NewStruct(7)
	child.Add("X", FloatField(1.5))
	child.Add("Y", FloatField(-2.5))
	root.Add("Position", StructField(child))

	item1 := NewStruct(0)
	item1.Add("Tag", ExoStringField("sword"))
	item2 := NewStruct(1)
	item2.Add("Tag", ExoStringField("shield"))
	item2.Add("StackSize", WordField(3))
	root.Add("ItemList", ListField([]*Struct{item1, item2}))

	return doc
}

func TestTreeRoundTrip(t *testing.T) {
	doc := buildDoc()

	first, err := doc.Bytes()
	require.NoError(t, err)

	got, err := ReadBytes(first)
	require.NoError(t, err)
	assert.Equal(t, "UTC ", got.FileType)
	assert.Equal(t, "V3.2", got.FileVersion)

	// an unmodified read-then-write reproduces the bytes exactly
	second, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValuesSurviveRoundTrip(t *testing.T) {
	data, err := buildDoc().Bytes()
	require.NoError(t, err)
	doc, err := ReadBytes(data)
	require.NoError(t, err)
	root := doc.Root

	b, ok := root.Field("Byte").Field().Byte()
	require.True(t, ok)
	assert.Equal(t, uint8(255), b)

	short, ok := root.Field("Short").Field().Short()
	require.True(t, ok)
	assert.Equal(t, int16(-12345), short)

	i, ok := root.Field("Int").Field().Int()
	require.True(t, ok)
	assert.Equal(t, int32(-42), i)

	i64, ok := root.Field("Int64").Field().Int64()
	require.True(t, ok)
	assert.Equal(t, int64(-1234567890123456789), i64)

	f32, ok := root.Field("Float").Field().Float()
	require.True(t, ok)
	assert.Equal(t, float32(3.25), f32)

	f64, ok := root.Field("Double").Field().Double()
	require.True(t, ok)
	assert.Equal(t, 2.718281828459045, f64)

	name, ok := root.Field("Name").Field().ExoString()
	require.True(t, ok)
	assert.Equal(t, "Hello, GFF", name)

	resref, ok := root.Field("TemplateResRef").Field().ResRef()
	require.True(t, ok)
	assert.Equal(t, "nw_chicken", resref)

	ls, ok := root.Field("FirstName").Field().ExoLocString()
	require.True(t, ok)
	assert.Equal(t, NoStrRef, ls.StrRef)
	require.Len(t, ls.Substrings, 2)
	assert.Equal(t, Substring{LangEnglish, GenderMasculine, "Hen"}, ls.Substrings[0])
	assert.Equal(t, Substring{LangFrench, GenderFeminine, "Poule"}, ls.Substrings[1])

	blob, ok := root.Field("Blob").Field().Void()
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, blob)

	pos, ok := root.Field("Position").Field().Struct()
	require.True(t, ok)
	assert.Equal(t, uint32(7), pos.ID)
	assert.Equal(t, 2, pos.NumFields())

	items, ok := root.Field("ItemList").Field().List()
	require.True(t, ok)
	require.Len(t, items, 2)
	tag, _ := items[1].Field("Tag").Field().ExoString()
	assert.Equal(t, "shield", tag)
}

// TestPinnedLayout nails the exact byte layout of the smallest interesting
// document: one struct holding one inline Int field.
func TestPinnedLayout(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Count", IntField(4))

	got, err := doc.Bytes()
	require.NoError(t, err)

	var want []byte
	want = append(want, "GFF V3.2"...)
	for _, v := range []uint32{
		56, 1, // structs
		68, 1, // fields
		80, 1, // labels
		96, 0, // field data
		96, 0, // field indices
		96, 0, // list indices
	} {
		want = binary.LittleEndian.AppendUint32(want, v)
	}
	// root struct: in-memory id sentinel, field index 0, one field
	for _, v := range []uint32{0xFFFFFFFF, 0, 1} {
		want = binary.LittleEndian.AppendUint32(want, v)
	}
	// field record: Int, label 0, inline value 4
	for _, v := range []uint32{5, 0, 4} {
		want = binary.LittleEndian.AppendUint32(want, v)
	}
	label := make([]byte, 16)
	copy(label, "Count")
	want = append(want, label...)

	assert.Equal(t, want, got)
}

func TestInlineFieldLeavesHeapEmpty(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Count", IntField(4))

	c, err := doc.toContainer()
	require.NoError(t, err)

	require.Len(t, c.Fields, 1)
	assert.Equal(t, container.TypeInt, c.Fields[0].Type)
	assert.Equal(t, uint32(4), c.Fields[0].DataOrOffset)
	assert.Empty(t, c.FieldData)
	assert.Empty(t, c.FieldIndices)
	assert.Empty(t, c.ListIndices)
}

func TestHeapFieldStoresOffset(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Big", Int64Field(8))

	c, err := doc.toContainer()
	require.NoError(t, err)

	require.Len(t, c.Fields, 1)
	assert.Equal(t, container.TypeInt64, c.Fields[0].Type)
	assert.Equal(t, uint32(0), c.Fields[0].DataOrOffset)
	assert.Equal(t, []byte{8, 0, 0, 0, 0, 0, 0, 0}, c.FieldData)
}

func TestShortStoredSignExtended(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Delta", ShortField(-2))

	c, err := doc.toContainer()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFFE), c.Fields[0].DataOrOffset)
}

func TestFloatBitsPreserved(t *testing.T) {
	// a quiet NaN with a payload: value comparison would lose it,
	// bit-pattern round-tripping must not
	nan := math.Float32frombits(0x7FC00001)
	doc := New("GFF ")
	doc.Root.Add("Odd", FloatField(nan))

	data, err := doc.Bytes()
	require.NoError(t, err)
	got, err := ReadBytes(data)
	require.NoError(t, err)

	v, ok := got.Root.Field("Odd").Field().Float()
	require.True(t, ok)
	assert.Equal(t, uint32(0x7FC00001), math.Float32bits(v))
}

// TestEmptyStructEchoesParsedSlot checks that the meaningless data slot of a
// zero-field struct is carried through a read/write cycle unchanged.
func TestEmptyStructEchoesParsedSlot(t *testing.T) {
	c := container.New("GFF ", "V3.2")
	c.Structs = []container.Struct{
		{TypeID: 0xFFFFFFFF, DataOrOffset: 0, FieldCount: 1},
		{TypeID: 3, DataOrOffset: 0xDEADBEEF, FieldCount: 0},
	}
	c.Fields = []container.Field{
		{Type: container.TypeStruct, LabelIndex: 0, DataOrOffset: 1},
	}
	lbl, err := container.MakeLabel("Child")
	require.NoError(t, err)
	c.Labels = []container.Label{lbl}
	c.Finalize()

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)

	doc, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)

	child, ok := doc.Root.Field("Child").Field().Struct()
	require.True(t, ok)
	assert.Equal(t, 0, child.NumFields())

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), out)
}

func TestResolverFillsResolvedText(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Description", ExoLocStringField(LocString{StrRef: 3}))
	data, err := doc.Bytes()
	require.NoError(t, err)

	got, err := ReadBytes(data, WithResolver(mapResolver{3: "Third entry"}))
	require.NoError(t, err)
	ls, ok := got.Root.Field("Description").Field().ExoLocString()
	require.True(t, ok)
	assert.Equal(t, uint32(3), ls.StrRef)
	assert.Equal(t, "Third entry", ls.Resolved)

	// without a resolver the reference is kept but not looked up
	got, err = ReadBytes(data)
	require.NoError(t, err)
	ls, ok = got.Root.Field("Description").Field().ExoLocString()
	require.True(t, ok)
	assert.Empty(t, ls.Resolved)
}

// countingResolver errors on every lookup, counting the attempts.
type countingResolver struct {
	calls int
}

func (r *countingResolver) Resolve(strRef uint32) (string, error) {
	r.calls++
	return "", fmt.Errorf("unexpected lookup of %d", strRef)
}

func TestNoStrRefNeverResolves(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Description", ExoLocStringField(LocString{
		StrRef:     NoStrRef,
		Substrings: []Substring{{Text: "literal only"}},
	}))
	data, err := doc.Bytes()
	require.NoError(t, err)

	res := &countingResolver{}
	got, err := ReadBytes(data, WithResolver(res))
	require.NoError(t, err)
	assert.Zero(t, res.calls)

	ls, ok := got.Root.Field("Description").Field().ExoLocString()
	require.True(t, ok)
	assert.Equal(t, "literal only", ls.FirstText())
}

func TestResolverMissIsFatal(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Description", ExoLocStringField(LocString{StrRef: 99}))
	data, err := doc.Bytes()
	require.NoError(t, err)

	_, err = ReadBytes(data, WithResolver(mapResolver{}))
	assert.ErrorIs(t, err, ErrStrRefNotFound)
}

func TestWriteErrors(t *testing.T) {
	t.Run("label too long", func(t *testing.T) {
		doc := New("GFF ")
		doc.Root.Add("ThisLabelIsTooLongToFit", IntField(1))
		_, err := doc.Bytes()
		assert.ErrorIs(t, err, ErrBadLabel)
	})

	t.Run("resref too long", func(t *testing.T) {
		doc := New("GFF ")
		doc.Root.Add("TemplateResRef", ResRefField("a_resref_name_that_is_too_long"))
		_, err := doc.Bytes()
		assert.ErrorIs(t, err, ErrWrite)
	})

	t.Run("no root", func(t *testing.T) {
		doc := &Gff{FileType: "GFF ", FileVersion: "V3.2"}
		_, err := doc.Bytes()
		assert.ErrorIs(t, err, ErrWrite)
	})

	t.Run("bad header tag", func(t *testing.T) {
		doc := New("GFF")
		doc.Root.Add("Count", IntField(1))
		_, err := doc.Bytes()
		assert.ErrorIs(t, err, ErrWrite)
	})
}

func TestReadNoRootStruct(t *testing.T) {
	c := container.New("GFF ", "V3.2")
	c.Finalize()
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)

	_, err = ReadBytes(buf.Bytes())
	assert.ErrorIs(t, err, ErrParse)
}

func TestReadMisalignedFieldIndices(t *testing.T) {
	c := container.New("GFF ", "V3.2")
	c.Structs = []container.Struct{
		{TypeID: 0xFFFFFFFF, DataOrOffset: 2, FieldCount: 2}, // not 4-aligned
	}
	c.Fields = []container.Field{
		{Type: container.TypeByte}, {Type: container.TypeByte},
	}
	lbl, err := container.MakeLabel("A")
	require.NoError(t, err)
	c.Labels = []container.Label{lbl}
	c.FieldIndices = []uint32{0, 1}
	c.Finalize()

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)

	_, err = ReadBytes(buf.Bytes())
	assert.ErrorIs(t, err, ErrAlignment)
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creature.utc")

	doc := buildDoc()
	require.NoError(t, doc.Save(path))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC ", got.FileType)

	want, err := doc.Bytes()
	require.NoError(t, err)
	have, err := got.Bytes()
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestMarshalJSON(t *testing.T) {
	doc := New("GFF ")
	doc.Root.Add("Count", IntField(4))
	doc.Root.Add("Name", ExoStringField("chicken"))

	out, err := doc.MarshalJSON()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"file_type":"GFF "`)
	assert.Contains(t, s, `"label":"Count"`)
	assert.Contains(t, s, `"type":"Int"`)
	assert.Contains(t, s, `"value":"chicken"`)
}
