package domain

// SimilarItem is a single ranked similarity hit.
type SimilarItem struct {
	// ID is the candidate item.
	ID int64 `json:"id"`

	// Score is the cosine similarity against the query item, in [-1, 1].
	Score float64 `json:"score"`
}

// SimilarResult is the outcome of a "find similar items" query.
type SimilarResult struct {
	// QueryID echoes the queried item.
	QueryID int64 `json:"query_id"`

	// TopK echoes the requested result count.
	TopK int `json:"top_k"`

	// Results are ordered by score descending, length <= TopK.
	Results []SimilarItem `json:"results"`
}
