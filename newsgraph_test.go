package newsgraph

import (
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/siherrmann/newsgraph/core/answer"
	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/tmc/langchaingo/llms"
)

var dbPort string

func TestMain(m *testing.M) {
	var teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error
	var err error
	teardown, dbPort, err = helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
}

// fixedEmbedder maps known topics to fixed unit vectors so similarity
// search behaves deterministically.
func fixedEmbedder(text string) ([]float32, error) {
	switch {
	case strings.Contains(text, "Acme"):
		return []float32{1, 0, 0}, nil
	case strings.Contains(text, "Widget"):
		return []float32{0, 1, 0}, nil
	default:
		return []float32{0, 0, 1}, nil
	}
}

// echoModel returns the full prompt as its completion
type echoModel struct{}

func (e *echoModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var prompt string
	for _, message := range messages {
		for _, part := range message.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt += text.Text
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: prompt}},
	}, nil
}

func (e *echoModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return prompt, nil
}

func initNewsGraph(t *testing.T) *NewsGraph {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")

	graph, err := NewNewsGraph(dbConfig, 3)
	require.NoError(t, err, "failed to create newsgraph instance")
	t.Cleanup(func() { _ = graph.Close() })

	graph.SetEmbedder(fixedEmbedder)
	graph.SetAnswerer(answer.NewAnswerer(&echoModel{}))

	return graph
}

func seedAcmeArticle(t *testing.T, graph *NewsGraph) *model.Article {
	article := &model.Article{
		Headline:    "Acme Robotics unveils household robot",
		URL:         "https://news.example/acme-robot",
		Body:        "Acme Robotics today unveiled a household robot for everyday chores.",
		PublishedAt: time.Now().UTC(),
	}
	require.NoError(t, graph.Articles.InsertArticle(article), "failed to insert article")

	embedding, err := fixedEmbedder(article.Body)
	require.NoError(t, err, "failed to embed article body")
	chunk := &model.Chunk{ArticleID: article.ID, Content: article.Body, Embedding: embedding}
	require.NoError(t, graph.Chunks.InsertChunk(chunk), "failed to insert chunk")

	newsNode := &model.Node{Kind: model.NodeKindNews, ArticleID: &article.ID, Props: model.Metadata{"headline_name": article.Headline}}
	require.NoError(t, graph.Nodes.InsertNode(newsNode), "failed to insert news node")
	companyNode := &model.Node{Kind: model.NodeKindCompany, Props: model.Metadata{"company_name": "Acme Robotics"}}
	require.NoError(t, graph.Nodes.InsertNode(companyNode), "failed to insert company node")

	publishedBy := &model.Edge{SourceNodeID: newsNode.ID, TargetNodeID: companyNode.ID, EdgeType: model.RelationTypePublishedBy}
	require.NoError(t, graph.Edges.InsertEdge(publishedBy), "failed to insert edge")

	return article
}

func TestAsk(t *testing.T) {
	ctx := context.Background()
	graph := initNewsGraph(t)
	article := seedAcmeArticle(t, graph)

	t.Run("Answer contains the parent article body verbatim", func(t *testing.T) {
		answerText, err := graph.Ask(ctx, "What did Acme Robotics announce?")
		require.NoError(t, err, "failed to ask")
		assert.Contains(t, answerText, article.Body, "Expected the parent article body to reach the model verbatim")
		assert.Contains(t, answerText, "What did Acme Robotics announce?", "Expected the question to reach the model")
	})

	t.Run("Unrelated question still produces an answer", func(t *testing.T) {
		answerText, err := graph.Ask(ctx, "Is there any news about interest rates?")
		require.NoError(t, err, "failed to ask")
		assert.NotContains(t, answerText, article.Body, "Expected no context for an unrelated question")
		assert.Contains(t, answerText, "Is there any news about interest rates?", "Expected the question to reach the model")
	})

	t.Run("Ask without answerer returns error", func(t *testing.T) {
		graph.Answerer = nil
		defer graph.SetAnswerer(answer.NewAnswerer(&echoModel{}))

		_, err := graph.Ask(ctx, "What did Acme Robotics announce?")
		assert.Error(t, err, "Expected error without answerer")
	})
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()
	graph := initNewsGraph(t)
	article := seedAcmeArticle(t, graph)

	t.Run("Bundle carries the expanded graph", func(t *testing.T) {
		bundles, err := graph.Retrieve(ctx, "What did Acme Robotics announce?", nil)
		require.NoError(t, err, "failed to retrieve")
		require.NotEmpty(t, bundles, "Expected at least one bundle")

		bundle := bundles[0]
		assert.Equal(t, article.Body, bundle.Text, "Expected the parent article body")
		assert.GreaterOrEqual(t, bundle.Score, 0.87, "Expected the similarity to clear the threshold")
		assert.Equal(t, []string{"Acme Robotics"}, bundle.Metadata.Companies, "Expected the publishing company")
		require.NotEmpty(t, bundle.Metadata.Graph, "Expected expanded relations")
		assert.Equal(t, model.RelationTypePublishedBy, bundle.Metadata.Graph[0].Type, "Expected the published by relation")
		assert.Equal(t, "Acme Robotics", bundle.Metadata.Graph[0].EndLabel, "Expected the company display label")
	})

	t.Run("No match yields zero bundles without error", func(t *testing.T) {
		bundles, err := graph.Retrieve(ctx, "Is there any news about interest rates?", nil)
		require.NoError(t, err, "failed to retrieve")
		assert.Empty(t, bundles, "Expected zero bundles when nothing clears the threshold")
	})

	t.Run("Retrieve without embedder returns error", func(t *testing.T) {
		graph.Embedder = nil
		defer graph.SetEmbedder(fixedEmbedder)

		_, err := graph.Retrieve(ctx, "What did Acme Robotics announce?", nil)
		assert.Error(t, err, "Expected error without embedder")
	})
}
