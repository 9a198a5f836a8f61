package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	loadSql "github.com/Shreekar11/insura-ai-sub005/sql"
	"github.com/google/uuid"
)

// EdgesDBHandlerFunctions defines the interface for Edges database operations.
type EdgesDBHandlerFunctions interface {
	InsertEdge(ctx context.Context, edge *model.Edge) error
	SelectEdge(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.Edge, error)
	SelectEdgesFromNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) ([]*model.Edge, error)
	DeleteEdge(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error
}

// EdgesDBHandler handles graph edge database operations
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

	err := loadSql.Init(edgesDbHandler.db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadEdgesSql(edgesDbHandler.db.Instance, force)
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

// InsertEdge inserts a new edge between two nodes and fills in the generated fields
func (h *EdgesDBHandler) InsertEdge(ctx context.Context, edge *model.Edge) error {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_edge($1, $2, $3, $4, $5, $6, $7)`,
		edge.WorkflowID,
		edge.SourceNodeID,
		edge.TargetNodeID,
		string(edge.EdgeType),
		edge.Weight,
		edge.Bidirectional,
		edge.Metadata,
	)

	err := row.Scan(
		&edge.ID,
		&edge.WorkflowID,
		&edge.SourceNodeID,
		&edge.TargetNodeID,
		&edge.EdgeType,
		&edge.Weight,
		&edge.Bidirectional,
		&edge.Metadata,
		&edge.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEdge retrieves an edge by ID within a workflow
func (h *EdgesDBHandler) SelectEdge(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.Edge, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_edge($1, $2)`,
		workflowID,
		id,
	)

	edge := &model.Edge{}
	err := row.Scan(
		&edge.ID,
		&edge.WorkflowID,
		&edge.SourceNodeID,
		&edge.TargetNodeID,
		&edge.EdgeType,
		&edge.Weight,
		&edge.Bidirectional,
		&edge.Metadata,
		&edge.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return edge, nil
}

// SelectEdgesFromNode retrieves the edges leaving a node, including
// bidirectional edges pointing at it
func (h *EdgesDBHandler) SelectEdgesFromNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) ([]*model.Edge, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_edges_from_node($1, $2)`,
		workflowID,
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
			&edge.WorkflowID,
			&edge.SourceNodeID,
			&edge.TargetNodeID,
			&edge.EdgeType,
			&edge.Weight,
			&edge.Bidirectional,
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

// DeleteEdge deletes an edge by ID within a workflow
func (h *EdgesDBHandler) DeleteEdge(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_edge($1, $2)`,
		workflowID,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
