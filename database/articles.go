package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	loadSql "github.com/siherrmann/newsgraph/sql"
)

// ArticlesDBHandlerFunctions defines the interface for Articles database operations.
type ArticlesDBHandlerFunctions interface {
	InsertArticle(article *model.Article) error
	SelectArticle(id int64) (*model.Article, error)
	SelectArticleByRID(rid uuid.UUID) (*model.Article, error)
	SelectArticleByChunk(chunkID int64) (*model.Article, error)
	DeleteArticle(rid uuid.UUID) error
}

// ArticlesDBHandler handles article-related database operations
type ArticlesDBHandler struct {
	db *helper.Database
}

// NewArticlesDBHandler creates a new articles database handler.
// It initializes the database connection and loads article-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewArticlesDBHandler(db *helper.Database, force bool) (*ArticlesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	articlesDbHandler := &ArticlesDBHandler{
		db: db,
	}

	err := loadSql.LoadArticlesSql(articlesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load articles sql", err)
	}

	err = articlesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ArticlesDBHandler")

	return articlesDbHandler, nil
}

// CreateTable creates the 'articles' table in the database.
// If the table already exists, it does not create it again.
func (h *ArticlesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_articles();`)
	if err != nil {
		log.Panicf("error initializing articles table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table articles")

	return nil
}

// InsertArticle inserts a new article
func (h *ArticlesDBHandler) InsertArticle(article *model.Article) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_article($1, $2, $3, $4, $5)`,
		article.Headline,
		article.URL,
		article.Body,
		article.Metadata,
		article.PublishedAt,
	)

	err := row.Scan(
		&article.ID,
		&article.RID,
		&article.Headline,
		&article.URL,
		&article.Body,
		&article.Metadata,
		&article.PublishedAt,
		&article.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectArticle retrieves an article by ID
func (h *ArticlesDBHandler) SelectArticle(id int64) (*model.Article, error) {
	return h.scanArticle(h.db.Instance.QueryRow(
		`SELECT * FROM select_article($1)`,
		id,
	))
}

// SelectArticleByRID retrieves an article by RID
func (h *ArticlesDBHandler) SelectArticleByRID(rid uuid.UUID) (*model.Article, error) {
	return h.scanArticle(h.db.Instance.QueryRow(
		`SELECT * FROM select_article_by_rid($1)`,
		rid,
	))
}

// SelectArticleByChunk retrieves the parent article of a chunk
func (h *ArticlesDBHandler) SelectArticleByChunk(chunkID int64) (*model.Article, error) {
	return h.scanArticle(h.db.Instance.QueryRow(
		`SELECT * FROM select_article_by_chunk($1)`,
		chunkID,
	))
}

// DeleteArticle deletes an article by RID, cascading to its chunks and nodes
func (h *ArticlesDBHandler) DeleteArticle(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_article($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (h *ArticlesDBHandler) scanArticle(row rowScanner) (*model.Article, error) {
	article := &model.Article{}
	err := row.Scan(
		&article.ID,
		&article.RID,
		&article.Headline,
		&article.URL,
		&article.Body,
		&article.Metadata,
		&article.PublishedAt,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return article, nil
}
