package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// generationSystemPrompt instructs the model to emit one structured item.
const generationSystemPrompt = "You are an AI that generates exam items in JSON format. " +
	"Respond with a single JSON object with fields: stimulus (string), stem (string), " +
	"choices (array of strings), answer (correct choice label), metadata (object)."

// generationTemperature matches the authoring pipeline's creative setting.
const generationTemperature = 0.8

// GenerationService produces exam items via the configured LLM and
// stores them for review. This is thin glue over the LLM boundary; the
// only logic is JSON decoding and authoring-rule validation.
type GenerationService struct {
	items driven.ItemStore
	llm   driven.LLMService
	docs  driven.DocumentSource
}

// NewGenerationService creates a generation service.
// llm may be nil, in which case generation reports ErrLLMUnavailable.
func NewGenerationService(items driven.ItemStore, llm driven.LLMService, docs driven.DocumentSource) *GenerationService {
	return &GenerationService{
		items: items,
		llm:   llm,
		docs:  docs,
	}
}

// FromPrompt generates, validates and stores one item from prompt text.
func (s *GenerationService) FromPrompt(ctx context.Context, prompt string) (*domain.Item, error) {
	return s.generate(ctx, prompt, prompt)
}

// FromDocument extracts prompt text from a .docx file and generates an
// item from it. The stored item records the document path as its prompt
// provenance.
func (s *GenerationService) FromDocument(ctx context.Context, path string) (*domain.Item, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("%w: no document source configured", domain.ErrInvalidInput)
	}

	text, err := s.docs.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting document text: %w", err)
	}

	return s.generate(ctx, text, "[docx]"+path)
}

func (s *GenerationService) generate(ctx context.Context, prompt, provenance string) (*domain.Item, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is empty", domain.ErrInvalidInput)
	}

	logger.Section("Item Generation")
	logger.Debug("Prompt length: %d, model: %s", len(prompt), s.llm.ModelName())

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{
		Temperature:  generationTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	var gen domain.GeneratedItem
	if err := json.Unmarshal([]byte(reply), &gen); err != nil {
		return nil, fmt.Errorf("%w: decoding LLM reply: %v", domain.ErrLLMUnavailable, err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	metadata := gen.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	item := &domain.Item{
		Source:   domain.SourceAI,
		Prompt:   provenance,
		Stimulus: gen.Stimulus,
		Stem:     gen.Stem,
		Choices:  gen.Choices,
		Answer:   gen.Answer,
		Metadata: metadata,
		Status:   domain.StatusNew,
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving generated item: %w", err)
	}

	logger.Info("Generated item %d stored for review", item.ID)
	return item, nil
}
