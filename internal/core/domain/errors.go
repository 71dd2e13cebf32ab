package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEncoderUnavailable indicates the embedding model failed to
	// initialise or crashed during inference. Non-empty text is never
	// silently substituted with a zero vector.
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// failed; item generation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrCorruptRecord indicates a stored embedding payload failed to
	// decode. Pool loading skips such records instead of failing.
	ErrCorruptRecord = errors.New("corrupt embedding record")

	// ErrDimensionMismatch indicates two vectors of different lengths
	// were compared, e.g. rows produced by different model versions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyCart indicates a commit was requested with no approved,
	// uncommitted items.
	ErrEmptyCart = errors.New("no approved items to commit")
)
