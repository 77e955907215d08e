// Package gff reads and writes GFF (Generic File Format) files, the
// offset-addressed binary container used for game resource and save data,
// and exposes their contents as a live, mutable tree.
//
// Reading materializes the flat on-disk arrays into a tree of [Struct]
// nodes whose fields are shared [Cell] handles; an editor holds cells
// directly while traversal reaches the same cells through the tree. Writing
// re-encodes the current tree from scratch: labels are re-interned, the
// field-data heap and index arrays are rebuilt, and section offsets are
// recomputed, such that an unmodified read-then-write reproduces the input
// byte for byte.
//
// Localized strings may reference an external talk table. The lookup is
// abstracted behind [StringResolver]; the tlk package provides the standard
// implementation.
package gff

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aurora-tools/go-gff/internal/container"
)

// DefaultVersion is the format version tag written for new documents.
const DefaultVersion = "V3.2"

// StringResolver maps an external string reference to display text. A
// resolver must be safe for concurrent Resolve calls; it is consulted once
// per localized string during a decode pass. Resolve fails when the
// reference is unknown.
type StringResolver interface {
	Resolve(strRef uint32) (string, error)
}

// Gff is a decoded GFF document: the header tags plus the root struct of
// the resolved tree.
type Gff struct {
	// FileType is the 4-char resource type tag, e.g. "IFO " or "UTC ".
	FileType string

	// FileVersion is the 4-char format version tag.
	FileVersion string

	// Root is the tree's root struct.
	Root *Struct
}

// New creates an empty document with the given 4-char file type tag.
func New(fileType string) *Gff {
	return &Gff{
		FileType:    fileType,
		FileVersion: DefaultVersion,
		Root:        NewStruct(container.NoOffset),
	}
}

// Option configures a read.
type Option func(*readOptions)

type readOptions struct {
	resolver StringResolver
}

// WithResolver supplies a talk-table resolver for localized strings. When
// absent, localized strings are decoded without resolving their external
// references.
func WithResolver(r StringResolver) Option {
	return func(o *readOptions) {
		o.resolver = r
	}
}

// Read parses a GFF document from a byte source.
func Read(src io.ReaderAt, opts ...Option) (*Gff, error) {
	var ro readOptions
	for _, opt := range opts {
		opt(&ro)
	}

	c, err := container.Read(src)
	if err != nil {
		return nil, err
	}
	return fromContainer(c, ro.resolver)
}

// ReadBytes parses a GFF document from an in-memory buffer.
func ReadBytes(data []byte, opts ...Option) (*Gff, error) {
	return Read(bytes.NewReader(data), opts...)
}

// Open reads a GFF document from a file.
func Open(path string, opts ...Option) (*Gff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return Read(f, opts...)
}

// WriteTo encodes the current tree and emits it. The whole file is built in
// memory before the first byte reaches w.
func (g *Gff) WriteTo(w io.Writer) (int64, error) {
	c, err := g.toContainer()
	if err != nil {
		return 0, err
	}
	return c.WriteTo(w)
}

// Bytes encodes the current tree into a fresh buffer.
func (g *Gff) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to a file.
func (g *Gff) Save(path string) error {
	data, err := g.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
