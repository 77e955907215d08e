package gff

import "sync"

// Cell is a shared, lock-guarded slot holding one labeled field. A cell
// reached by tree traversal and the same cell held directly by an editor
// widget observe the same live value: readers take the shared lock, the
// single mutator takes the exclusive lock, so a field is never torn
// mid-update.
type Cell struct {
	mu    sync.RWMutex
	label string
	field Field
}

// NewCell creates a cell holding a labeled field.
func NewCell(label string, f Field) *Cell {
	return &Cell{label: label, field: f}
}

// Label returns the cell's field name.
func (c *Cell) Label() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

// Field returns a snapshot of the cell's current value.
func (c *Cell) Field() Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.field
}

// Get returns the label and value in one locked read.
func (c *Cell) Get() (string, Field) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label, c.field
}

// Set replaces the cell's value in place. Every holder of the cell
// observes the new value.
func (c *Cell) Set(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.field = f
}

// SetLabel renames the field.
func (c *Cell) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = label
}

// HasLabel reports whether the cell's field name equals label.
func (c *Cell) HasLabel(label string) bool {
	return c.Label() == label
}
