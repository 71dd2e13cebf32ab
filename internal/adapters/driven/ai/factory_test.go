package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// mapConfig is a minimal in-memory ConfigStore for factory tests.
type mapConfig map[string]any

func (m mapConfig) Get(key string) (any, bool) { v, ok := m[key]; return v, ok }
func (m mapConfig) GetString(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
func (m mapConfig) GetInt(key string) int {
	if i, ok := m[key].(int); ok {
		return i
	}
	return 0
}
func (m mapConfig) GetBool(key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}
func (m mapConfig) Set(key string, value any) error { m[key] = value; return nil }
func (m mapConfig) Save() error                     { return nil }
func (m mapConfig) Load() error                     { return nil }
func (m mapConfig) Path() string                    { return "" }

func TestCreateEmbeddingService_DefaultsToOllama(t *testing.T) {
	svc, err := CreateEmbeddingService(mapConfig{})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
}

func TestCreateEmbeddingService_OpenAIRequiresKey(t *testing.T) {
	cfg := mapConfig{KeyEmbeddingBackend: BackendOpenAI}

	_, err := CreateEmbeddingService(cfg)
	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	cfg := mapConfig{
		KeyEmbeddingBackend: BackendOpenAI,
		KeyOpenAIAPIKey:     "test-key",
		KeyEmbeddingModel:   "text-embedding-3-small",
	}

	svc, err := CreateEmbeddingService(cfg)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestCreateEmbeddingService_UnknownBackend(t *testing.T) {
	cfg := mapConfig{KeyEmbeddingBackend: "cohere"}

	_, err := CreateEmbeddingService(cfg)
	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
}

func TestCreateLLMService_UnconfiguredReturnsNil(t *testing.T) {
	svc, err := CreateLLMService(mapConfig{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_APIKeyImpliesOpenAI(t *testing.T) {
	cfg := mapConfig{KeyOpenAIAPIKey: "test-key"}

	svc, err := CreateLLMService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestCreateLLMService_Ollama(t *testing.T) {
	cfg := mapConfig{KeyLLMBackend: BackendOllama, KeyLLMModel: "llama3.2"}

	svc, err := CreateLLMService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestEncoderSettings(t *testing.T) {
	model, dims := EncoderSettings(mapConfig{})
	assert.Equal(t, "nomic-embed-text", model)
	assert.Equal(t, 768, dims)

	model, dims = EncoderSettings(mapConfig{KeyEmbeddingBackend: BackendOpenAI})
	assert.Equal(t, "text-embedding-3-small", model)
	assert.Equal(t, 1536, dims)

	model, dims = EncoderSettings(mapConfig{
		KeyEmbeddingModel:      "custom-model",
		KeyEmbeddingDimensions: 384,
	})
	assert.Equal(t, "custom-model", model)
	assert.Equal(t, 384, dims)
}

func TestCreateLLMService_UnknownBackend(t *testing.T) {
	cfg := mapConfig{KeyLLMBackend: "bedrock"}

	_, err := CreateLLMService(cfg)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
