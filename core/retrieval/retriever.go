// Package retrieval implements the retrieval half of the question-answering
// workflow: vector similarity search over chunks followed by a bounded
// graph expansion around each match's parent article.
package retrieval

import (
	"context"
	"fmt"

	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
)

// ChunkSearcher is the chunk store operation retrieval depends on
type ChunkSearcher interface {
	SelectChunksBySimilarity(embedding []float32, limit int, threshold float64) ([]*model.Chunk, error)
}

// ArticleSelector is the article store operation retrieval depends on
type ArticleSelector interface {
	SelectArticleByChunk(chunkID int64) (*model.Article, error)
}

// RelationExpander is the graph expansion operation retrieval depends on
type RelationExpander interface {
	SelectRelationsForArticle(articleID int64, excludedKinds []model.NodeKind) ([]model.Relation, error)
}

// Retriever assembles context bundles for a query embedding
type Retriever struct {
	chunks   ChunkSearcher
	articles ArticleSelector
	edges    RelationExpander
}

// NewRetriever creates a new retriever over the given store handlers
func NewRetriever(chunks ChunkSearcher, articles ArticleSelector, edges RelationExpander) *Retriever {
	return &Retriever{
		chunks:   chunks,
		articles: articles,
		edges:    edges,
	}
}

// Retrieve returns at most config.TopK context bundles for the embedding.
// Only chunks at or above config.SimilarityThreshold are considered. Each
// bundle carries the parent article's full body, the chunk's similarity
// score and the deduplicated relations collected by the graph expansion.
// An empty result is not an error; it yields zero bundles.
func (r *Retriever) Retrieve(ctx context.Context, embedding []float32, config *model.QueryConfig) ([]*model.ContextBundle, error) {
	if config == nil {
		defaultConfig := model.DefaultQueryConfig()
		config = &defaultConfig
	}

	// Only the single hop expansion is implemented; reject other depths
	// instead of silently falling back.
	if config.ExpandHops != 1 {
		return nil, helper.NewError("validate query config", fmt.Errorf("unsupported expansion depth %d, only one hop is supported", config.ExpandHops))
	}

	chunks, err := r.chunks.SelectChunksBySimilarity(embedding, config.TopK, config.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	bundles := make([]*model.ContextBundle, 0, len(chunks))
	for _, chunk := range chunks {
		article, err := r.articles.SelectArticleByChunk(chunk.ID)
		if err != nil {
			return nil, err
		}

		relations, err := r.edges.SelectRelationsForArticle(article.ID, config.ExcludedKinds)
		if err != nil {
			return nil, err
		}
		relations = model.DedupRelations(relations)

		bundles = append(bundles, &model.ContextBundle{
			Text:  article.Body,
			Score: chunk.Similarity,
			Metadata: model.BundleMetadata{
				ChunkID:   chunk.ID,
				Companies: publishingCompanies(relations),
				URLs:      articleURLs(article),
				Graph:     relations,
			},
		})
	}

	return bundles, nil
}

// publishingCompanies collects the company endpoints of PUBLISHED_BY
// relations, deduplicated in first occurrence order
func publishingCompanies(relations []model.Relation) []string {
	seen := make(map[string]bool)
	var companies []string
	for _, relation := range relations {
		if relation.Type != model.RelationTypePublishedBy {
			continue
		}
		for _, endpoint := range []struct {
			kind  model.NodeKind
			label string
		}{
			{relation.StartKind, relation.StartLabel},
			{relation.EndKind, relation.EndLabel},
		} {
			if endpoint.kind != model.NodeKindCompany || endpoint.label == "" || seen[endpoint.label] {
				continue
			}
			seen[endpoint.label] = true
			companies = append(companies, endpoint.label)
		}
	}
	return companies
}

func articleURLs(article *model.Article) []string {
	if article.URL == "" {
		return nil
	}
	return []string{article.URL}
}
