// Package tui provides an interactive terminal interface for reviewing
// exam items. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"errors"

	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driving"
)

// ErrMissingItemService is returned when the item service is not provided.
var ErrMissingItemService = errors.New("tui: item service is required")

// ErrMissingReviewService is returned when the review service is not provided.
var ErrMissingReviewService = errors.New("tui: review service is required")

// Ports aggregates the driving port interfaces required by the review TUI.
type Ports struct {
	// Item lists the items under review.
	Item driving.ItemService

	// Review drives approve/reject/commit.
	Review driving.ReviewService

	// Similarity runs duplicate checks on the selected item.
	// Optional: the similarity pane is hidden when unset.
	Similarity driving.SimilarityService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Item == nil {
		return ErrMissingItemService
	}
	if p.Review == nil {
		return ErrMissingReviewService
	}
	return nil
}
