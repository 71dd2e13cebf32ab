package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations wrap a pretrained sentence-embedding model behind an
// inference API. They are expensive to reach or initialise, so core
// services construct them lazily (see services.Encoder) and callers must
// not invoke them for empty text.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// Every vector in a similarity pool must share this dimensionality.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at first use to fail fast before inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
