package container

import "errors"

// Error taxonomy for the flat GFF layer. Granular failures wrap one of
// these sentinels so callers can classify with errors.Is.
var (
	// ErrParse covers truncated input, invalid header tags, out-of-range
	// field type tags and any other malformed on-disk data.
	ErrParse = errors.New("malformed gff data")

	// ErrAlignment is reported when a multi-field struct's offset into the
	// field-indices array is not a multiple of the index width. This is
	// unrecoverable corruption.
	ErrAlignment = errors.New("unaligned field indices offset")

	// ErrWrite covers I/O failures while emitting the container.
	ErrWrite = errors.New("gff write failed")

	// ErrBadLabel is reported when a label cannot be encoded into its
	// 16-byte slot (too long, or outside the legacy codepage).
	ErrBadLabel = errors.New("invalid label")
)
