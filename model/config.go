package model

// QueryConfig configures one retrieval request
type QueryConfig struct {
	// Vector search parameters
	TopK                int     `json:"top_k"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`

	// Graph expansion parameters. ExpandHops must be 1; retrieval rejects
	// other depths.
	ExpandHops    int        `json:"expand_hops"`
	ExcludedKinds []NodeKind `json:"excluded_kinds,omitempty"`
}

// DefaultQueryConfig returns the standard configuration: the three nearest
// chunks at or above 0.87 similarity, expanded one hop while skipping
// helper node kinds. Results keep the order the index returns them in,
// which is descending similarity.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:                3,
		SimilarityThreshold: 0.87,
		ExpandHops:          1,
		ExcludedKinds:       HelperNodeKinds,
	}
}
