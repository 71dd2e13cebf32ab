package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// itemResponse is the JSON shape of an item.
type itemResponse struct {
	ID          int64          `json:"id"`
	Source      string         `json:"source"`
	Prompt      string         `json:"prompt,omitempty"`
	Stimulus    string         `json:"stimulus"`
	Stem        string         `json:"stem"`
	Choices     []string       `json:"choices"`
	Answer      string         `json:"answer"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Status      string         `json:"status"`
	Committed   bool           `json:"committed"`
	CommitBatch string         `json:"commit_batch,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toItemResponse(item *domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Source:      string(item.Source),
		Prompt:      item.Prompt,
		Stimulus:    item.Stimulus,
		Stem:        item.Stem,
		Choices:     item.Choices,
		Answer:      item.Answer,
		Metadata:    item.Metadata,
		Status:      string(item.Status),
		Committed:   item.Committed,
		CommitBatch: item.CommitBatch,
		CreatedAt:   item.CreatedAt,
	}
}

func toItemResponses(items []domain.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i := range items {
		out[i] = toItemResponse(&items[i])
	}
	return out
}

// createItemRequest is the POST /api/items body.
type createItemRequest struct {
	Stimulus string         `json:"stimulus"`
	Stem     string         `json:"stem"`
	Choices  []string       `json:"choices"`
	Answer   string         `json:"answer"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// generateRequest is the POST /api/generate body.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.ports.Item.Create(r.Context(), domain.ItemDraft{
		Stimulus: req.Stimulus,
		Stem:     req.Stem,
		Choices:  req.Choices,
		Answer:   req.Answer,
		Metadata: req.Metadata,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := s.ports.Item.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": toItemResponses(items)})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.ports.Item.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleFindSimilar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	k := DefaultTopK
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxTopK {
			writeError(w, http.StatusBadRequest,
				"top_k must be between 1 and "+strconv.Itoa(MaxTopK))
			return
		}
		k = n
	}

	if raw := r.URL.Query().Get("recompute"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "recompute must be a boolean")
			return
		}
		if force {
			if err := s.ports.Similarity.Recompute(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
		}
	}

	result, err := s.ports.Similarity.FindSimilar(r.Context(), id, k)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.ports.Review.Approve(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.ports.Review.Reject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	items, err := s.ports.Review.Cart(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": toItemResponses(items)})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.ports.Review.Commit(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": receipt.BatchID,
		"count":    receipt.Count,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.ports.Generation == nil {
		writeError(w, http.StatusBadGateway, domain.ErrLLMUnavailable.Error())
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.ports.Generation.FromPrompt(r.Context(), req.Prompt)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "item id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLLMUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrEncoderUnavailable):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Error("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encoding response failed: %v", err)
	}
}
