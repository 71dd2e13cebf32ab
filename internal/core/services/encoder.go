package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// EncoderFactory constructs the underlying embedding backend.
// It is invoked at most once per Encoder, on first use of a non-empty
// text, and may take substantial wall-clock time.
type EncoderFactory func() (driven.EmbeddingService, error)

// Encoder maps text to fixed-length L2-normalised vectors.
//
// The underlying embedding backend is shared process-wide and expensive
// to initialise, so construction is deferred until the first call that
// actually needs it and guarded by double-checked locking: concurrent
// first callers never construct duplicate backends, and warm callers
// never take the lock. A failed initialisation is sticky; every later
// call that needs the model reports domain.ErrEncoderUnavailable.
//
// Empty or whitespace-only text never reaches the backend: it maps
// deterministically to the zero vector, the well-defined "no signal"
// representation.
type Encoder struct {
	model   string
	dims    int
	factory EncoderFactory

	// ready is the lock-free fast path once the backend is warm.
	ready atomic.Pointer[driven.EmbeddingService]

	mu          sync.Mutex
	initialised bool
	svc         driven.EmbeddingService
	initErr     error
}

// NewEncoder creates an encoder for the given model name and expected
// dimensionality. The factory is not invoked until first use.
func NewEncoder(model string, dims int, factory EncoderFactory) *Encoder {
	return &Encoder{
		model:   model,
		dims:    dims,
		factory: factory,
	}
}

// Dimensions returns the fixed vector length D.
func (e *Encoder) Dimensions() int {
	return e.dims
}

// ModelName returns the configured encoder model identifier.
func (e *Encoder) ModelName() string {
	return e.model
}

// Encode returns the embedding for text. Empty or whitespace-only text
// yields the zero vector of length D without touching the backend.
func (e *Encoder) Encode(ctx context.Context, text string) ([]float32, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return make([]float32, e.dims), nil
	}

	svc, err := e.backend()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoderUnavailable, err)
	}

	vec, err := svc.Embed(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoderUnavailable, err)
	}
	if len(vec) != e.dims {
		return nil, fmt.Errorf("%w: backend returned %d dimensions, want %d",
			domain.ErrEncoderUnavailable, len(vec), e.dims)
	}

	normalise(vec)
	return vec, nil
}

// Close releases the backend if it was ever constructed.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.svc == nil {
		return nil
	}
	return e.svc.Close()
}

// backend returns the shared embedding backend, constructing it on the
// first call. Callers holding the zero-vector fast path never get here.
func (e *Encoder) backend() (driven.EmbeddingService, error) {
	if p := e.ready.Load(); p != nil {
		return *p, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialised {
		return e.svc, e.initErr
	}
	e.initialised = true

	logger.Info("Initialising embedding backend (model=%s)", e.model)
	svc, err := e.factory()
	if err != nil {
		e.initErr = fmt.Errorf("constructing embedding backend: %w", err)
		logger.Warn("Embedding backend initialisation failed: %v", e.initErr)
		return nil, e.initErr
	}

	e.svc = svc
	e.ready.Store(&svc)
	return e.svc, nil
}

// normalise scales vec to unit Euclidean norm in place.
// Backends are expected to return normalised vectors already; this keeps
// the invariant regardless of backend behaviour. A zero vector is left
// untouched.
func normalise(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
