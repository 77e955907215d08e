// Package tlk reads talk tables (TLK files), the external string tables
// that GFF localized strings reference by numeric id. It implements the
// gff.StringResolver capability.
//
// A talk table can hold tens of thousands of entries; the table of
// (offset, size) records is read eagerly but string bytes are fetched
// lazily and cached, so resolving a handful of references does not load
// the whole file.
package tlk

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/aurora-tools/go-gff/gff"
	"github.com/aurora-tools/go-gff/internal/binary"
	"github.com/aurora-tools/go-gff/internal/codepage"
)

// Errors reported by talk-table reads and lookups.
var (
	ErrParse         = errors.New("malformed tlk data")
	ErrInvalidStrRef = errors.New("string ref outside talk table")
)

// headerSize is the fixed TLK header: two 4-char tags plus three u32 fields.
const headerSize = 20

// entrySize is the fixed size of one string-data record: flags, a 16-byte
// sound resref, volume and pitch variance, string offset and size, and the
// sound length.
const entrySize = 40

// stringInfo locates one entry's text relative to the string-entries offset.
type stringInfo struct {
	offset uint32
	size   uint32
}

// Tlk is an open talk table. It is safe for concurrent Resolve calls.
// It implements [gff.StringResolver].
type Tlk struct {
	fileType    string
	fileVersion string
	language    gff.Language

	infos         []stringInfo
	entriesOffset uint32

	mu    sync.RWMutex
	src   io.ReaderAt
	cache map[uint32]string
}

// Read parses a talk table's header and string-info records. The source is
// retained for lazy string reads; it must stay readable for the lifetime of
// the table.
func Read(src io.ReaderAt) (*Tlk, error) {
	r := binary.NewReader(src)

	tag, err := r.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: reading file type: %v", ErrParse, err)
	}
	version, err := r.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: reading file version: %v", ErrParse, err)
	}
	if !utf8.Valid(tag) || !utf8.Valid(version) {
		return nil, fmt.Errorf("%w: header tags are not valid text", ErrParse)
	}

	language, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading language id: %v", ErrParse, err)
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading string count: %v", ErrParse, err)
	}
	entriesOffset, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading entries offset: %v", ErrParse, err)
	}

	infos := make([]stringInfo, count)
	for i := range infos {
		// flags(4) + sound resref(16) + volume(4) + pitch(4)
		r.Skip(28)
		if infos[i].offset, err = r.ReadUint32(); err != nil {
			return nil, fmt.Errorf("%w: reading string info %d: %v", ErrParse, i, err)
		}
		if infos[i].size, err = r.ReadUint32(); err != nil {
			return nil, fmt.Errorf("%w: reading string info %d: %v", ErrParse, i, err)
		}
		r.Skip(4) // sound length
	}

	return &Tlk{
		fileType:      string(tag),
		fileVersion:   string(version),
		language:      gff.Language(language),
		infos:         infos,
		entriesOffset: entriesOffset,
		src:           src,
		cache:         make(map[uint32]string),
	}, nil
}

// FileType returns the 4-char file type tag, normally "TLK ".
func (t *Tlk) FileType() string {
	return t.fileType
}

// FileVersion returns the 4-char version tag, normally "V3.0".
func (t *Tlk) FileVersion() string {
	return t.fileVersion
}

// Language returns the table's language id.
func (t *Tlk) Language() gff.Language {
	return t.language
}

// NumStrings returns the number of entries in the table.
func (t *Tlk) NumStrings() int {
	return len(t.infos)
}

// Resolve returns the text for a string reference, reading and caching it
// on first access. The gff.NoStrRef sentinel resolves to the empty string
// without touching the table; any other reference outside the table is an
// error.
func (t *Tlk) Resolve(strRef uint32) (string, error) {
	if strRef == gff.NoStrRef {
		return "", nil
	}

	t.mu.RLock()
	text, ok := t.cache[strRef]
	t.mu.RUnlock()
	if ok {
		return text, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if text, ok := t.cache[strRef]; ok {
		return text, nil
	}
	if int(strRef) >= len(t.infos) {
		return "", fmt.Errorf("%w: strref %d of %d entries", ErrInvalidStrRef, strRef, len(t.infos))
	}

	info := t.infos[strRef]
	text = ""
	if info.size > 0 {
		r := binary.NewReader(t.src).At(int64(t.entriesOffset) + int64(info.offset))
		buf, err := r.ReadBytes(int(info.size))
		if err != nil {
			return "", fmt.Errorf("%w: reading string %d: %v", ErrParse, strRef, err)
		}
		text = codepage.Decode(buf)
	}

	t.cache[strRef] = text
	return text, nil
}

var _ gff.StringResolver = (*Tlk)(nil)
