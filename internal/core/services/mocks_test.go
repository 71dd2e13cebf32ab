package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with canned vectors.
type mockEmbedder struct {
	dims      int
	vectors   map[string][]float32
	embedErr  error
	calls     atomic.Int64
	closed    bool
	modelName string
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{
		dims:      dims,
		vectors:   make(map[string][]float32),
		modelName: "mock-embedder",
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls.Add(1)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if vec, ok := m.vectors[text]; ok {
		return append([]float32(nil), vec...), nil
	}
	// Deterministic fallback: first component set from text length.
	vec := make([]float32, m.dims)
	vec[0] = float32(len(text))
	return vec, nil
}

func (m *mockEmbedder) Dimensions() int   { return m.dims }
func (m *mockEmbedder) ModelName() string { return m.modelName }

func (m *mockEmbedder) Ping(context.Context) error { return nil }

func (m *mockEmbedder) Close() error {
	m.closed = true
	return nil
}

// factoryFor wraps a mock embedder in an EncoderFactory, counting
// constructions.
func factoryFor(m *mockEmbedder, constructions *atomic.Int64) EncoderFactory {
	return func() (driven.EmbeddingService, error) {
		if constructions != nil {
			constructions.Add(1)
		}
		return m, nil
	}
}

// failingFactory always fails to construct a backend.
func failingFactory() (driven.EmbeddingService, error) {
	return nil, fmt.Errorf("model load failed")
}

// mockLLM implements driven.LLMService with a canned reply.
type mockLLM struct {
	reply   string
	chatErr error

	lastMessages []driven.ChatMessage
	lastOpts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.lastMessages = messages
	m.lastOpts = opts
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

// mockDocSource implements driven.DocumentSource.
type mockDocSource struct {
	text       string
	extractErr error
	lastPath   string
}

func (m *mockDocSource) ExtractText(path string) (string, error) {
	m.lastPath = path
	if m.extractErr != nil {
		return "", m.extractErr
	}
	return m.text, nil
}
