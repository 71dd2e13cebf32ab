// Package sqlite provides a SQLite-backed implementation of the item
// and embedding stores.
//
// A single database file holds both tables. Embedding vectors are
// stored as typed binary payloads: a uint32 little-endian dimension
// header followed by the float32 components. The header makes decode
// failures detectable, so corrupt rows surface as
// domain.ErrCorruptRecord instead of garbage vectors.
package sqlite
