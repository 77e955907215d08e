package gff

import (
	"errors"

	"github.com/aurora-tools/go-gff/internal/container"
)

// Error taxonomy. Every failure surfaced by this package wraps one of these
// sentinels; none is retried or recovered internally.
var (
	// ErrParse covers malformed input: truncated sections, invalid header
	// tags, out-of-range field type tags, or dangling indices.
	ErrParse = container.ErrParse

	// ErrAlignment is reported when a multi-field struct or list offset is
	// not a multiple of the 4-byte index width. This is treated as fatal
	// corruption rather than silently misread.
	ErrAlignment = container.ErrAlignment

	// ErrWrite covers failures while emitting bytes. Sections are built in
	// memory first, so a partial write can only come from the destination.
	ErrWrite = container.ErrWrite

	// ErrBadLabel is reported when a field label cannot be encoded into its
	// 16-byte slot.
	ErrBadLabel = container.ErrBadLabel

	// ErrStrRefNotFound is reported when a localized string carries an
	// external reference the resolver does not know. Substituting empty
	// text here would corrupt displayed data, so the miss is fatal; callers
	// may degrade at a higher layer.
	ErrStrRefNotFound = errors.New("string ref not found")
)
