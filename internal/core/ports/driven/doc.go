// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// Driven ports are consumed by core services and implemented by
// adapters under internal/adapters/driven:
//
//   - ItemStore / EmbeddingStore: SQLite persistence
//   - EmbeddingService: HTTP embedding backends (Ollama, OpenAI)
//   - LLMService: chat-completion backends for item generation
//   - ConfigStore: TOML configuration
//   - DocumentSource: prompt text extraction from authoring documents
package driven
