// Package container implements the flat, offset-addressed on-disk
// representation of a GFF file.
//
// A GFF file is a fixed header followed by six contiguous sections:
//
//   - Struct records (12 bytes each)
//   - Field records (12 bytes each)
//   - Labels (16-byte interned field names)
//   - Field data: an append-only heap of variable-size payloads
//   - Field indices: u32 entries resolving multi-field structs to fields
//   - List indices: u32 entries resolving List fields to struct sequences
//
// The central polymorphism of the format is the DataOrOffset slot carried
// by both struct and field records: depending on the record's kind it holds
// an inline value, a heap offset, an array index, or a byte offset into one
// of the index arrays. [Container.FieldAt] and the typed heap accessors
// decode the slot immediately so the raw integer never escapes untyped.
//
// A [Container] read from a file is immutable; writing starts from a fresh
// container populated by the tree encoder and emitted with
// [Container.WriteTo]. All multi-byte values are little-endian.
package container
