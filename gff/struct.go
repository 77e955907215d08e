package gff

import "github.com/aurora-tools/go-gff/internal/container"

// Struct is a resolved GFF node: a type id plus an ordered list of shared
// field cells. Structs parsed from a file remember the data slot their
// on-disk record carried; for empty structs that value is semantically
// unused but must be echoed on write for byte-exact round trips.
type Struct struct {
	// ID is the struct's programmer-assigned type id.
	ID uint32

	fields []*Cell

	// origOffset is the as-parsed DataOrOffset, or NoOffset for structs
	// built in memory.
	origOffset uint32
}

// NewStruct creates an empty in-memory struct with the given type id.
func NewStruct(id uint32) *Struct {
	return &Struct{ID: id, origOffset: container.NoOffset}
}

// Add appends a new labeled field and returns its cell.
func (s *Struct) Add(label string, f Field) *Cell {
	c := NewCell(label, f)
	s.fields = append(s.fields, c)
	return c
}

// AddCell appends an existing cell, sharing it with any other holder.
func (s *Struct) AddCell(c *Cell) {
	s.fields = append(s.fields, c)
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Fields returns the struct's cells in order. The returned slice is a copy;
// the cells are shared.
func (s *Struct) Fields() []*Cell {
	out := make([]*Cell, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the direct child cell with the given label, or nil.
func (s *Struct) Field(label string) *Cell {
	for _, c := range s.fields {
		if c.HasLabel(label) {
			return c
		}
	}
	return nil
}

// Remove deletes the first direct child with the given label, reporting
// whether a field was removed.
func (s *Struct) Remove(label string) bool {
	for i, c := range s.fields {
		if c.HasLabel(label) {
			s.fields = append(s.fields[:i], s.fields[i+1:]...)
			return true
		}
	}
	return false
}
