package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	newsgraph "github.com/siherrmann/newsgraph"
	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
)

const sampleBody = `Acme Robotics announced record quarterly earnings on Tuesday,
driven by strong demand for its warehouse automation platform. Chief
executive Jane Miller said the company plans to expand into European
markets next year. Shares rose 12 percent after the announcement.`

func main() {
	// Load .env for OPENAI_API_KEY
	_ = godotenv.Load()

	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	g, err := newsgraph.NewNewsGraph(dbConfig, 1536)
	if err != nil {
		log.Fatalf("Failed to create newsgraph: %v", err)
	}
	defer g.Close()

	// Hosted embedder and answerer
	if err := g.UseOpenAI("text-embedding-3-small", "gpt-4o-mini"); err != nil {
		log.Fatalf("Failed to set up OpenAI collaborators: %v", err)
	}

	// Load a small news graph: one article with a chunk and its entities
	article := &model.Article{
		Headline: "Acme Robotics posts record earnings",
		URL:      "https://example.com/news/acme-earnings",
		Body:     sampleBody,
	}
	if err := g.Articles.InsertArticle(article); err != nil {
		log.Fatalf("Failed to insert article: %v", err)
	}

	embedding, err := g.Embedder(sampleBody)
	if err != nil {
		log.Fatalf("Failed to embed article body: %v", err)
	}
	chunk := &model.Chunk{
		ArticleID: article.ID,
		Content:   sampleBody,
		Embedding: embedding,
	}
	if err := g.Chunks.InsertChunk(chunk); err != nil {
		log.Fatalf("Failed to insert chunk: %v", err)
	}

	newsNode := &model.Node{
		Kind:      model.NodeKindNews,
		ArticleID: &article.ID,
		Props:     model.Metadata{"headline_name": article.Headline},
	}
	companyNode := &model.Node{
		Kind:  model.NodeKindCompany,
		Props: model.Metadata{"company_name": "Acme Robotics"},
	}
	personNode := &model.Node{
		Kind:  model.NodeKindPerson,
		Props: model.Metadata{"person_name": "Jane Miller"},
	}
	for _, node := range []*model.Node{newsNode, companyNode, personNode} {
		if err := g.Nodes.InsertNode(node); err != nil {
			log.Fatalf("Failed to insert node: %v", err)
		}
	}

	edges := []*model.Edge{
		{SourceNodeID: newsNode.ID, TargetNodeID: companyNode.ID, EdgeType: model.RelationTypePublishedBy},
		{SourceNodeID: newsNode.ID, TargetNodeID: personNode.ID, EdgeType: model.RelationTypeMentions},
	}
	for _, edge := range edges {
		if err := g.Edges.InsertEdge(edge); err != nil {
			log.Fatalf("Failed to insert edge: %v", err)
		}
	}

	// Ask a question
	question := "What did Acme Robotics announce?"
	fmt.Printf("Question: %s\n", question)

	answerText, err := g.Ask(context.Background(), question)
	if err != nil {
		log.Fatalf("Failed to answer question: %v", err)
	}

	fmt.Printf("\nAnswer: %s\n", answerText)
}
