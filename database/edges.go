package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/newsgraph/helper"
	"github.com/siherrmann/newsgraph/model"
	loadSql "github.com/siherrmann/newsgraph/sql"
)

// EdgesDBHandlerFunctions defines the interface for Edges database operations.
type EdgesDBHandlerFunctions interface {
	InsertEdge(edge *model.Edge) error
	SelectEdge(id uuid.UUID) (*model.Edge, error)
	SelectEdgesFromNode(nodeID int64) ([]*model.Edge, error)
	SelectRelationsForArticle(articleID int64, excludedKinds []model.NodeKind) ([]model.Relation, error)
	DeleteEdge(id uuid.UUID) error
}

// EdgesDBHandler handles edge-related database operations
type EdgesDBHandler struct {
	db *helper.Database
}

// NewEdgesDBHandler creates a new edges database handler.
// It initializes the database connection and loads edge-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEdgesDBHandler(db *helper.Database, force bool) (*EdgesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	edgesDbHandler := &EdgesDBHandler{
		db: db,
	}

	err := loadSql.LoadEdgesSql(edgesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load edges sql", err)
	}

	err = edgesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EdgesDBHandler")

	return edgesDbHandler, nil
}

// CreateTable creates the 'edges' table in the database.
// If the table already exists, it does not create it again.
func (h *EdgesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_edges();`)
	if err != nil {
		log.Panicf("error initializing edges table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table edges")

	return nil
}

// InsertEdge inserts a new edge
func (h *EdgesDBHandler) InsertEdge(edge *model.Edge) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_edge($1, $2, $3, $4)`,
		edge.SourceNodeID,
		edge.TargetNodeID,
		edge.EdgeType,
		edge.Metadata,
	)

	err := row.Scan(
		&edge.ID,
		&edge.SourceNodeID,
		&edge.TargetNodeID,
		&edge.EdgeType,
		&edge.Metadata,
		&edge.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEdge retrieves an edge by ID
func (h *EdgesDBHandler) SelectEdge(id uuid.UUID) (*model.Edge, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_edge($1)`,
		id,
	)

	edge := &model.Edge{}
	err := row.Scan(
		&edge.ID,
		&edge.SourceNodeID,
		&edge.TargetNodeID,
		&edge.EdgeType,
		&edge.Metadata,
		&edge.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return edge, nil
}

// SelectEdgesFromNode retrieves all edges starting at a node
func (h *EdgesDBHandler) SelectEdgesFromNode(nodeID int64) ([]*model.Edge, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_edges_from_node($1)`,
		nodeID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var edges []*model.Edge
	for rows.Next() {
		edge := &model.Edge{}
		err := rows.Scan(
			&edge.ID,
			&edge.SourceNodeID,
			&edge.TargetNodeID,
			&edge.EdgeType,
			&edge.Metadata,
			&edge.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		edges = append(edges, edge)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return edges, nil
}

// SelectRelationsForArticle runs the one-hop graph expansion around an
// article and returns the traversed relationships with their endpoint
// display labels resolved. Endpoints of an excluded kind never appear.
func (h *EdgesDBHandler) SelectRelationsForArticle(articleID int64, excludedKinds []model.NodeKind) ([]model.Relation, error) {
	kinds := make([]string, len(excludedKinds))
	for i, kind := range excludedKinds {
		kinds[i] = string(kind)
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_relations_for_article($1, $2)`,
		articleID,
		pq.Array(kinds),
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var relations []model.Relation
	for rows.Next() {
		var relation model.Relation
		var startProps, endProps model.Metadata
		err := rows.Scan(
			&relation.EdgeID,
			&relation.Type,
			&relation.StartID,
			&relation.StartKind,
			&startProps,
			&relation.EndID,
			&relation.EndKind,
			&endProps,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		startNode := model.Node{Kind: relation.StartKind, Props: startProps}
		endNode := model.Node{Kind: relation.EndKind, Props: endProps}
		relation.StartLabel = startNode.DisplayLabel()
		relation.EndLabel = endNode.DisplayLabel()

		relations = append(relations, relation)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return relations, nil
}

// DeleteEdge deletes an edge by ID
func (h *EdgesDBHandler) DeleteEdge(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_edge($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
