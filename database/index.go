package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/siherrmann/newsgraph/helper"
)

// IndexOptions tunes recreation of the chunk embedding index. Zero values
// fall back to the pgvector defaults for the chosen index type.
type IndexOptions struct {
	// HNSW parameters
	M              int
	EfConstruction int
	// IVFFlat parameters
	Lists int
}

// ChangeIndexType rebuilds the chunk embedding index as either "hnsw" or
// "ivfflat". The old index is dropped first, so similarity search runs
// unindexed until the rebuild finishes.
func (h *ChunksDBHandler) ChangeIndexType(ctx context.Context, indexType string, opts IndexOptions) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `DROP INDEX IF EXISTS idx_chunks_embedding;`)
	if err != nil {
		return helper.NewError("drop index", err)
	}

	var createIndexSQL string
	switch indexType {
	case "hnsw":
		m := opts.M
		if m == 0 {
			m = 16
		}
		efConstruction := opts.EfConstruction
		if efConstruction == 0 {
			efConstruction = 64
		}
		createIndexSQL = fmt.Sprintf(
			`CREATE INDEX idx_chunks_embedding ON chunks USING hnsw (embedding vector_cosine_ops) WITH (m = %d, ef_construction = %d);`,
			m, efConstruction,
		)
	case "ivfflat":
		lists := opts.Lists
		if lists == 0 {
			lists = 100
		}
		createIndexSQL = fmt.Sprintf(
			`CREATE INDEX idx_chunks_embedding ON chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = %d);`,
			lists,
		)
	default:
		return helper.NewError("change index type", fmt.Errorf("unsupported index type %s, use hnsw or ivfflat", indexType))
	}

	_, err = h.db.Instance.ExecContext(ctx, createIndexSQL)
	if err != nil {
		return helper.NewError("create index", err)
	}

	h.db.Logger.Info("Rebuilt chunk embedding index", slog.String("index_type", indexType))

	return nil
}
