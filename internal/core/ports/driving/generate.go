package driving

import (
	"context"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// GenerationService produces exam items via the configured LLM.
type GenerationService interface {
	// FromPrompt generates, validates and stores one item from prompt text.
	FromPrompt(ctx context.Context, prompt string) (*domain.Item, error)

	// FromDocument extracts prompt text from a .docx file, then
	// generates, validates and stores one item.
	FromDocument(ctx context.Context, path string) (*domain.Item, error)
}
