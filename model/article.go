package model

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a full-length news article (the parent document of its chunks)
type Article struct {
	ID          int64     `json:"id"`
	RID         uuid.UUID `json:"rid"`
	Headline    string    `json:"headline"`
	URL         string    `json:"url,omitempty"`
	Body        string    `json:"body"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
