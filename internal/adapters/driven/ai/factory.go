// Package ai provides factory functions for creating embedding and LLM
// service adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/veritas-labs/itemforge-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/veritas-labs/itemforge-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/veritas-labs/itemforge-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/veritas-labs/itemforge-cli/internal/adapters/driven/llm/openai"
	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Supported backend names.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// Config keys consulted by the factories.
const (
	KeyEmbeddingBackend    = "embedding.backend"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingBaseURL    = "embedding.base_url"
	KeyEmbeddingDimensions = "embedding.dimensions"
	KeyLLMBackend          = "llm.backend"
	KeyLLMModel            = "llm.model"
	KeyLLMBaseURL          = "llm.base_url"
	KeyOpenAIAPIKey        = "openai.api_key"
)

// EncoderSettings resolves the embedding model name and vector size the
// configured backend will produce, applying the same defaults the
// factories do.
func EncoderSettings(cfg driven.ConfigStore) (model string, dims int) {
	model = cfg.GetString(KeyEmbeddingModel)
	dims = cfg.GetInt(KeyEmbeddingDimensions)

	switch cfg.GetString(KeyEmbeddingBackend) {
	case BackendOpenAI:
		if model == "" {
			model = openaiembed.DefaultModel
		}
		if dims == 0 {
			dims = openaiembed.DimensionsFor(model)
		}
	default:
		if model == "" {
			model = ollamaembed.DefaultModel
		}
		if dims == 0 {
			dims = ollamaembed.DefaultDimensions
		}
	}
	return model, dims
}

// CreateEmbeddingService builds an embedding service from configuration.
// The backend defaults to Ollama when unset, so a fresh install works
// against a local daemon with no configuration at all.
func CreateEmbeddingService(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	backend := cfg.GetString(KeyEmbeddingBackend)
	if backend == "" {
		backend = BackendOllama
	}

	switch backend {
	case BackendOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString(KeyEmbeddingBaseURL),
			Model:      cfg.GetString(KeyEmbeddingModel),
			Dimensions: cfg.GetInt(KeyEmbeddingDimensions),
		}), nil

	case BackendOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.GetString(KeyOpenAIAPIKey),
			BaseURL:    cfg.GetString(KeyEmbeddingBaseURL),
			Model:      cfg.GetString(KeyEmbeddingModel),
			Dimensions: cfg.GetInt(KeyEmbeddingDimensions),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w. Run 'itemforge settings set-key' to fix",
				domain.ErrEncoderUnavailable, err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding backend %q",
			domain.ErrEncoderUnavailable, backend)
	}
}

// CreateAndValidateEmbeddingService builds an embedding service and
// verifies it is reachable before handing it out.
func CreateAndValidateEmbeddingService(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEncoderUnavailable, err)
	}

	return svc, nil
}

// CreateLLMService builds an LLM service from configuration. Returns
// (nil, nil) when no LLM is configured: item generation is optional and
// the rest of the tool works without it.
func CreateLLMService(cfg driven.ConfigStore) (driven.LLMService, error) {
	backend := cfg.GetString(KeyLLMBackend)

	switch backend {
	case "":
		// Fall back to OpenAI when a key is present, otherwise unconfigured
		if cfg.GetString(KeyOpenAIAPIKey) == "" {
			return nil, nil
		}
		backend = BackendOpenAI
	case BackendOllama, BackendOpenAI:
	default:
		return nil, fmt.Errorf("%w: unsupported llm backend %q", domain.ErrLLMUnavailable, backend)
	}

	switch backend {
	case BackendOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.GetString(KeyLLMBaseURL),
			Model:   cfg.GetString(KeyLLMModel),
		}), nil

	default:
		svc, err := openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.GetString(KeyOpenAIAPIKey),
			BaseURL: cfg.GetString(KeyLLMBaseURL),
			Model:   cfg.GetString(KeyLLMModel),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w. Run 'itemforge settings set-key' to fix",
				domain.ErrLLMUnavailable, err)
		}
		return svc, nil
	}
}
