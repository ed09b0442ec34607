// Package newsgraph answers natural-language questions over a news
// knowledge graph stored in PostgreSQL. A question is embedded, the
// nearest article chunks are fetched from the pgvector index, each match
// is expanded one hop through the graph to collect related entities, and
// the combined context is handed to a language model for the final answer.
package newsgraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/newsgraph/core/answer"
	"github.com/siherrmann/newsgraph/core/embed"
	"github.com/siherrmann/newsgraph/core/retrieval"
	"github.com/siherrmann/newsgraph/database"
	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	loadSql "github.com/siherrmann/newsgraph/sql"
)

// NewsGraph provides a unified interface to the news graph store and the
// question-answering workflow over it
type NewsGraph struct {
	DB       *helper.Database
	Articles *database.ArticlesDBHandler
	Chunks   *database.ChunksDBHandler
	Nodes    *database.NodesDBHandler
	Edges    *database.EdgesDBHandler
	// Collaborators for the question-answering workflow
	Retriever *retrieval.Retriever
	Answerer  *answer.Answerer
	Embedder  embed.EmbedFunc
	// Logging
	log *slog.Logger
}

// NewNewsGraph creates a new NewsGraph instance with all handlers
// initialized. The embedder and answerer are set separately so hosted and
// local collaborators stay substitutable.
func NewNewsGraph(config *helper.DatabaseConfiguration, embeddingDim int) (*NewsGraph, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("newsgraph", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create all handlers in the correct order (articles first, then the
	// tables referencing them)
	// force=false to not reload if functions already exist
	articles, err := database.NewArticlesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create articles handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	nodes, err := database.NewNodesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create nodes handler", err)
	}

	edges, err := database.NewEdgesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create edges handler", err)
	}

	retriever := retrieval.NewRetriever(chunks, articles, edges)

	return &NewsGraph{
		DB:        db,
		Articles:  articles,
		Chunks:    chunks,
		Nodes:     nodes,
		Edges:     edges,
		Retriever: retriever,
		log:       logger,
	}, nil
}

// Close closes the database connection
func (g *NewsGraph) Close() error {
	if g.DB != nil && g.DB.Instance != nil {
		return g.DB.Instance.Close()
	}
	return nil
}

// SetEmbedder sets the embedding function used for queries
func (g *NewsGraph) SetEmbedder(embedder embed.EmbedFunc) {
	g.Embedder = embedder
}

// SetAnswerer sets the answer synthesis collaborator
func (g *NewsGraph) SetAnswerer(answerer *answer.Answerer) {
	g.Answerer = answerer
}

// UseDefaultEmbedder sets up the local all-MiniLM-L6-v2 embedder
// (384 dimensions)
func (g *NewsGraph) UseDefaultEmbedder() error {
	embedder, err := embed.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}
	g.Embedder = embedder
	return nil
}

// UseOpenAI sets up the hosted OpenAI embedder and answerer.
// Credentials come from the OPENAI_API_KEY environment variable.
func (g *NewsGraph) UseOpenAI(embeddingModel, chatModel string) error {
	embedder, err := embed.NewOpenAIEmbedder(embeddingModel)
	if err != nil {
		return helper.NewError("create openai embedder", err)
	}

	answerer, err := answer.NewOpenAIAnswerer(chatModel)
	if err != nil {
		return helper.NewError("create openai answerer", err)
	}

	g.Embedder = embedder
	g.Answerer = answerer
	return nil
}

// Retrieve embeds the question and assembles at most config.TopK context
// bundles from the graph store
func (g *NewsGraph) Retrieve(ctx context.Context, question string, config *model.QueryConfig) ([]*model.ContextBundle, error) {
	if g.Embedder == nil {
		return nil, helper.NewError("retrieve", fmt.Errorf("embedder not set, use SetEmbedder() first"))
	}

	embedding, err := g.Embedder(question)
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}

	return g.Retriever.Retrieve(ctx, embedding, config)
}

// Ask answers a question from the news graph: retrieval with the default
// configuration followed by answer synthesis. Zero retrieved bundles still
// produce an answer; quality is then the model's concern.
func (g *NewsGraph) Ask(ctx context.Context, question string) (string, error) {
	config := model.DefaultQueryConfig()
	return g.AskWithConfig(ctx, question, &config)
}

// AskWithConfig answers a question using the given retrieval configuration
func (g *NewsGraph) AskWithConfig(ctx context.Context, question string, config *model.QueryConfig) (string, error) {
	if g.Answerer == nil {
		return "", helper.NewError("ask", fmt.Errorf("answerer not set, use SetAnswerer() first"))
	}

	bundles, err := g.Retrieve(ctx, question, config)
	if err != nil {
		return "", err
	}

	g.log.Info("Retrieved context bundles", slog.Int("num_bundles", len(bundles)))

	answerText, err := g.Answerer.Answer(ctx, question, bundles)
	if err != nil {
		return "", err
	}

	return answerText, nil
}
