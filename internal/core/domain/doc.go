// Package domain defines the core business entities for itemforge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: An exam item (stimulus, stem, choices, answer) under review
//   - EmbeddingRecord: The cached embedding vector for an item's stimulus
//   - SimilarResult: The ranked outcome of a similarity query
//   - GeneratedItem: The structured payload produced by the LLM
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
