package domain

import "time"

// EmbeddingRecord is the persisted embedding for a single item.
// At most one record exists per item; writes are upserts keyed by ItemID.
type EmbeddingRecord struct {
	// ItemID references the embedded item.
	ItemID int64

	// Model identifies the encoder version that produced the vector.
	Model string

	// Vector is the fixed-length embedding. Non-empty stimulus text
	// produces an L2-normalised vector; empty text produces all zeros.
	Vector []float32

	// UpdatedAt is when the vector was last (re)computed.
	UpdatedAt time.Time
}

// PoolEntry is one candidate in a similarity pool.
type PoolEntry struct {
	ItemID int64
	Vector []float32
}
