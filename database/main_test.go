package database

import (
	"context"
	"log"
	"testing"

	"github.com/siherrmann/newsgraph/helper"
	loadSql "github.com/siherrmann/newsgraph/sql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

// testEmbeddingDim keeps the chunk table small for tests
const testEmbeddingDim = 3

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

func initDB(t *testing.T) *helper.Database {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	database := helper.NewTestDatabase(dbConfig)

	err = loadSql.Init(database.Instance)
	require.NoError(t, err)

	return database
}

func initHandlers(t *testing.T) (*ArticlesDBHandler, *ChunksDBHandler, *NodesDBHandler, *EdgesDBHandler) {
	database := initDB(t)

	articles, err := NewArticlesDBHandler(database, true)
	require.NoError(t, err, "failed to create articles handler")
	chunks, err := NewChunksDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err, "failed to create chunks handler")
	nodes, err := NewNodesDBHandler(database, true)
	require.NoError(t, err, "failed to create nodes handler")
	edges, err := NewEdgesDBHandler(database, true)
	require.NoError(t, err, "failed to create edges handler")

	return articles, chunks, nodes, edges
}
