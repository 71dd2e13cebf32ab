package mcp

import (
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Item manages the item bank.
	Item driving.ItemService

	// Similarity runs find-similar queries.
	Similarity driving.SimilarityService

	// Review drives the approve/reject/commit workflow.
	Review driving.ReviewService

	// Generation produces items via the configured LLM.
	// Optional: the generate tool reports an error when unset.
	Generation driving.GenerationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Item == nil {
		return ErrMissingItemService
	}
	if p.Similarity == nil {
		return ErrMissingSimilarityService
	}
	// Review and Generation are optional
	return nil
}
