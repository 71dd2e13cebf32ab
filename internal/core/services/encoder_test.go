package services

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

const testDims = 4

func TestEncoder_EmptyTextIsZeroVector(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, nil))
	ctx := context.Background()

	for _, text := range []string{"", "   ", " \t\n "} {
		vec, err := encoder.Encode(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, make([]float32, testDims), vec)
	}

	// The backend must never be constructed or called for empty text.
	assert.Equal(t, int64(0), embedder.calls.Load())
}

func TestEncoder_NonEmptyTextIsNormalised(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	embedder.vectors["hello"] = []float32{3, 4, 0, 0}
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, nil))

	vec, err := encoder.Encode(context.Background(), "hello")

	require.NoError(t, err)
	require.Len(t, vec, testDims)
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)
}

func TestEncoder_TrimsBeforeEncoding(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	embedder.vectors["hello"] = []float32{1, 0, 0, 0}
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, nil))

	vec, err := encoder.Encode(context.Background(), "  hello  ")

	require.NoError(t, err)
	assert.InDelta(t, 1.0, vec[0], 1e-6)
}

func TestEncoder_ConstructsBackendExactlyOnce(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	var constructions atomic.Int64
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, &constructions))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := encoder.Encode(ctx, "concurrent text")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), constructions.Load())
}

func TestEncoder_FactoryFailureIsSticky(t *testing.T) {
	encoder := NewEncoder("mock", testDims, failingFactory)
	ctx := context.Background()

	_, err := encoder.Encode(ctx, "needs the model")
	require.ErrorIs(t, err, domain.ErrEncoderUnavailable)

	// Subsequent calls keep failing; the factory is not retried.
	_, err = encoder.Encode(ctx, "still needs the model")
	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)

	// The zero-vector fast path is unaffected by the broken backend.
	vec, err := encoder.Encode(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, testDims), vec)
}

func TestEncoder_DimensionMismatchFromBackend(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	embedder.vectors["short"] = []float32{1, 0}
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, nil))

	_, err := encoder.Encode(context.Background(), "short")

	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
}

func TestEncoder_Accessors(t *testing.T) {
	encoder := NewEncoder("all-MiniLM-L6-v2", 384, failingFactory)

	assert.Equal(t, 384, encoder.Dimensions())
	assert.Equal(t, "all-MiniLM-L6-v2", encoder.ModelName())
}

func TestEncoder_CloseWithoutInit(t *testing.T) {
	encoder := NewEncoder("mock", testDims, failingFactory)
	assert.NoError(t, encoder.Close())
}

func TestEncoder_CloseReleasesBackend(t *testing.T) {
	embedder := newMockEmbedder(testDims)
	encoder := NewEncoder("mock", testDims, factoryFor(embedder, nil))
	_, err := encoder.Encode(context.Background(), "warm it up")
	require.NoError(t, err)

	require.NoError(t, encoder.Close())

	assert.True(t, embedder.closed)
}
