package domain

import (
	"fmt"
	"strings"
)

// Limits enforced on generated items before they are stored.
const (
	// MaxChoiceWords is the maximum word count for a single choice.
	MaxChoiceWords = 12

	// MaxStemWords is the maximum word count for a stem.
	MaxStemWords = 20
)

// GeneratedItem is the structured payload the LLM is asked to produce.
type GeneratedItem struct {
	Stimulus string         `json:"stimulus"`
	Stem     string         `json:"stem"`
	Choices  []string       `json:"choices"`
	Answer   string         `json:"answer"`
	Metadata map[string]any `json:"metadata"`
}

// Validate checks the authoring constraints on a generated item.
func (g *GeneratedItem) Validate() error {
	if strings.TrimSpace(g.Answer) == "" {
		return fmt.Errorf("%w: answer is required", ErrInvalidInput)
	}
	if len(g.Choices) == 0 {
		return fmt.Errorf("%w: at least one choice is required", ErrInvalidInput)
	}
	for i, choice := range g.Choices {
		if len(strings.Fields(choice)) > MaxChoiceWords {
			return fmt.Errorf("%w: choice %d exceeds %d words", ErrInvalidInput, i+1, MaxChoiceWords)
		}
	}
	if len(strings.Fields(g.Stem)) > MaxStemWords {
		return fmt.Errorf("%w: stem exceeds %d words", ErrInvalidInput, MaxStemWords)
	}
	return nil
}
