// Package services implements the core business logic for itemforge.
//
// Services implement the driving ports and depend only on driven ports
// and domain types. The similarity subsystem lives here:
//
//   - Encoder: process-wide, lazily initialised embedding front-end
//   - EmbeddingCache: get-or-compute persistence of item embeddings
//   - Cosine / TopK: pairwise scoring and ranking
//   - SimilarityService: the query orchestrator tying them together
//
// Alongside it sit the thin item CRUD, review workflow and LLM
// generation services.
package services
