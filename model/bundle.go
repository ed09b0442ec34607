package model

// BundleMetadata is the structured metadata attached to a context bundle
type BundleMetadata struct {
	ChunkID   int64      `json:"chunk_id"`
	Companies []string   `json:"companies,omitempty"`
	URLs      []string   `json:"urls,omitempty"`
	Graph     []Relation `json:"graph,omitempty"`
}

// ContextBundle packages one retrieved chunk for answer synthesis: the
// parent article's full body, the similarity score of the matched chunk
// and the metadata collected by graph expansion. Bundles are assembled
// fresh per query and never persisted.
type ContextBundle struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata BundleMetadata `json:"metadata"`
}
