package domain

import (
	"strings"
	"time"
)

// ItemSource identifies how an item entered the bank.
type ItemSource string

// Item sources.
const (
	// SourceAI marks items produced by the LLM generation pipeline.
	SourceAI ItemSource = "ai"

	// SourceManual marks items entered by a human author.
	SourceManual ItemSource = "manual"
)

// ItemStatus is the review state of an item.
type ItemStatus string

// Item statuses.
const (
	// StatusNew is the initial state of every item.
	StatusNew ItemStatus = "new"

	// StatusApproved marks items a reviewer has accepted.
	StatusApproved ItemStatus = "approved"

	// StatusRejected marks items a reviewer has declined.
	StatusRejected ItemStatus = "rejected"
)

// Item is a single exam item (question) in the bank.
type Item struct {
	// ID is the stable, unique identifier assigned on creation.
	ID int64

	// Source records whether the item was generated or entered manually.
	Source ItemSource

	// Prompt is the generation prompt that produced the item, if any.
	// Items generated from a document carry a "[docx]<path>" marker.
	Prompt string

	// Stimulus is the passage or scenario the question is based on.
	// This is the only field used for similarity embedding.
	Stimulus string

	// Stem is the question text.
	Stem string

	// Choices are the answer options.
	Choices []string

	// Answer is the correct choice label (e.g. "A").
	Answer string

	// Metadata holds free-form authoring metadata (topic, difficulty, ...).
	Metadata map[string]any

	// Status is the review state.
	Status ItemStatus

	// Committed is true once the item has been exported in a commit batch.
	Committed bool

	// CommitBatch is the batch identifier assigned at commit time.
	CommitBatch string

	// CreatedAt is when the item was stored.
	CreatedAt time.Time
}

// QueryText returns the text used as the similarity source for the item.
// The stimulus is trimmed; an absent stimulus yields the empty string.
func (i *Item) QueryText() string {
	return strings.TrimSpace(i.Stimulus)
}

// ItemDraft is the caller-supplied portion of a manually created item.
type ItemDraft struct {
	Stimulus string
	Stem     string
	Choices  []string
	Answer   string
	Metadata map[string]any
}

// CommitReceipt summarises a cart commit.
type CommitReceipt struct {
	// BatchID identifies the commit batch.
	BatchID string

	// Count is the number of items committed.
	Count int
}
