package gff

import (
	"github.com/goccy/go-json"
)

// JSON marshalling for tooling and dumps. The encoding is lossy in one
// direction only: it is meant for inspection, not as an alternative wire
// format.

// MarshalJSON encodes the document as its header tags plus the root struct.
func (g *Gff) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FileType    string  `json:"file_type"`
		FileVersion string  `json:"file_version"`
		Root        *Struct `json:"root"`
	}{g.FileType, g.FileVersion, g.Root})
}

// MarshalJSON encodes a struct as its type id and ordered field list.
func (s *Struct) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     uint32  `json:"id"`
		Fields []*Cell `json:"fields"`
	}{s.ID, s.Fields()})
}

// MarshalJSON encodes a cell as a label, kind name and value snapshot.
func (c *Cell) MarshalJSON() ([]byte, error) {
	label, f := c.Get()
	return json.Marshal(struct {
		Label string `json:"label"`
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{label, f.Kind().String(), f.jsonValue()})
}

// MarshalJSON encodes a field as a kind name and value.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{f.Kind().String(), f.jsonValue()})
}

func (f Field) jsonValue() any {
	switch f.kind {
	case KindByte:
		v, _ := f.Byte()
		return v
	case KindChar:
		v, _ := f.Char()
		return v
	case KindWord:
		v, _ := f.Word()
		return v
	case KindShort:
		v, _ := f.Short()
		return v
	case KindDWord:
		v, _ := f.DWord()
		return v
	case KindInt:
		v, _ := f.Int()
		return v
	case KindDWord64:
		v, _ := f.DWord64()
		return v
	case KindInt64:
		v, _ := f.Int64()
		return v
	case KindFloat:
		v, _ := f.Float()
		return v
	case KindDouble:
		v, _ := f.Double()
		return v
	case KindExoString:
		v, _ := f.ExoString()
		return v
	case KindResRef:
		v, _ := f.ResRef()
		return v
	case KindExoLocString:
		ls, _ := f.ExoLocString()
		subs := make([]map[string]any, 0, len(ls.Substrings))
		for _, sub := range ls.Substrings {
			subs = append(subs, map[string]any{
				"language": sub.Language.String(),
				"gender":   sub.Gender.String(),
				"text":     sub.Text,
			})
		}
		out := map[string]any{
			"strref":     ls.StrRef,
			"substrings": subs,
		}
		if ls.Resolved != "" {
			out["resolved"] = ls.Resolved
		}
		return out
	case KindVoid:
		v, _ := f.Void()
		return v // base64 per encoding/json convention
	case KindStruct:
		v, _ := f.Struct()
		return v
	case KindList:
		v, _ := f.List()
		return v
	}
	return nil
}
