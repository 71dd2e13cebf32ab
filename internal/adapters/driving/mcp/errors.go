// Package mcp provides an MCP (Model Context Protocol) server adapter
// for itemforge. It lets AI assistants browse the item bank, run
// similarity checks and drive the review workflow.
package mcp

import "errors"

// ErrMissingItemService is returned when the item service is not provided.
var ErrMissingItemService = errors.New("mcp: item service is required")

// ErrMissingSimilarityService is returned when the similarity service is not provided.
var ErrMissingSimilarityService = errors.New("mcp: similarity service is required")
