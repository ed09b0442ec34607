package model

import (
	"time"
)

// Chunk represents a stored split of an article body, indexed for similarity search
type Chunk struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"article_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
	ChunkIndex *int      `json:"chunk_index,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Results
	Similarity float64 `json:"similarity,omitempty"`
}
