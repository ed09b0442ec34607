package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	loadSql "github.com/siherrmann/newsgraph/sql"
)

// NodesDBHandlerFunctions defines the interface for Nodes database operations.
type NodesDBHandlerFunctions interface {
	InsertNode(node *model.Node) error
	SelectNode(id int64) (*model.Node, error)
	SelectNodesByKind(kind model.NodeKind) ([]*model.Node, error)
	SelectNodeByArticle(articleID int64) (*model.Node, error)
	DeleteNode(id int64) error
}

// NodesDBHandler handles node-related database operations
type NodesDBHandler struct {
	db *helper.Database
}

// NewNodesDBHandler creates a new nodes database handler.
// It initializes the database connection and loads node-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewNodesDBHandler(db *helper.Database, force bool) (*NodesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	nodesDbHandler := &NodesDBHandler{
		db: db,
	}

	err := loadSql.LoadNodesSql(nodesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load nodes sql", err)
	}

	err = nodesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized NodesDBHandler")

	return nodesDbHandler, nil
}

// CreateTable creates the 'nodes' table in the database.
// If the table already exists, it does not create it again.
func (h *NodesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_nodes();`)
	if err != nil {
		log.Panicf("error initializing nodes table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table nodes")

	return nil
}

// InsertNode inserts a new node
func (h *NodesDBHandler) InsertNode(node *model.Node) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_node($1, $2, $3)`,
		node.Kind,
		node.ArticleID,
		node.Props,
	)

	err := row.Scan(
		&node.ID,
		&node.Kind,
		&node.ArticleID,
		&node.Props,
		&node.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectNode retrieves a node by ID
func (h *NodesDBHandler) SelectNode(id int64) (*model.Node, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_node($1)`,
		id,
	)

	node := &model.Node{}
	err := row.Scan(
		&node.ID,
		&node.Kind,
		&node.ArticleID,
		&node.Props,
		&node.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// SelectNodesByKind retrieves all nodes of a kind
func (h *NodesDBHandler) SelectNodesByKind(kind model.NodeKind) ([]*model.Node, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_nodes_by_kind($1)`,
		kind,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var nodes []*model.Node
	for rows.Next() {
		node := &model.Node{}
		err := rows.Scan(
			&node.ID,
			&node.Kind,
			&node.ArticleID,
			&node.Props,
			&node.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		nodes = append(nodes, node)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return nodes, nil
}

// SelectNodeByArticle retrieves the news node representing an article
func (h *NodesDBHandler) SelectNodeByArticle(articleID int64) (*model.Node, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_node_by_article($1)`,
		articleID,
	)

	node := &model.Node{}
	err := row.Scan(
		&node.ID,
		&node.Kind,
		&node.ArticleID,
		&node.Props,
		&node.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// DeleteNode deletes a node by ID
func (h *NodesDBHandler) DeleteNode(id int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_node($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
