// Package codepage implements the legacy single-byte text encoding used for
// GFF labels, resource references and strings.
//
// GFF files predate widespread UTF-8 and store text as Windows-1252. The
// decode direction is total: every byte maps to a code point, so any label
// slot read from a file decodes without error. The encode direction can fail
// for text outside the Windows-1252 repertoire.
package codepage

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Decode converts Windows-1252 bytes to a string.
func Decode(data []byte) string {
	buf := make([]rune, len(data))
	for i, b := range data {
		buf[i] = charmap.Windows1252.DecodeByte(b)
	}
	return string(buf)
}

// DecodeTrimmed decodes a null-padded fixed-width slot: the content ends at
// the first zero byte, or spans the full slot when no zero byte is present.
func DecodeTrimmed(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return Decode(data[:i])
		}
	}
	return Decode(data)
}

// Encode converts a string to Windows-1252 bytes. It fails if any rune has
// no Windows-1252 representation.
func Encode(s string) ([]byte, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return nil, fmt.Errorf("rune %q has no Windows-1252 encoding", r)
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// EncodeFixed encodes a string into a null-padded slot of the given width.
// It fails if the encoded form exceeds the slot.
func EncodeFixed(s string, width int) ([]byte, error) {
	enc, err := Encode(s)
	if err != nil {
		return nil, err
	}
	if len(enc) > width {
		return nil, fmt.Errorf("%q encodes to %d bytes, exceeds %d-byte slot", s, len(enc), width)
	}
	buf := make([]byte, width)
	copy(buf, enc)
	return buf, nil
}
