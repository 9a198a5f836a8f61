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
	"github.com/lib/pq"
)

// NodesDBHandlerFunctions defines the interface for Nodes database operations.
type NodesDBHandlerFunctions interface {
	InsertNode(ctx context.Context, node *model.GraphNode) error
	SelectNode(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.GraphNode, error)
	SelectNodesByBridgedIDs(ctx context.Context, workflowID uuid.UUID, bridgedIDs []uuid.UUID) ([]*model.GraphNode, error)
	DeleteNode(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error
}

// NodesDBHandler handles graph node database operations
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

	err := loadSql.Init(nodesDbHandler.db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadNodesSql(nodesDbHandler.db.Instance, force)
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

// InsertNode inserts a new graph node and fills in the generated fields
func (h *NodesDBHandler) InsertNode(ctx context.Context, node *model.GraphNode) error {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_node($1, $2, $3, $4)`,
		node.WorkflowID,
		pq.Array(node.Labels),
		node.Properties,
		pq.Array(node.BridgedIDs),
	)

	err := row.Scan(
		&node.ID,
		&node.WorkflowID,
		pq.Array(&node.Labels),
		&node.Properties,
		pq.Array(&node.BridgedIDs),
		&node.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectNode retrieves a node by ID within a workflow
func (h *NodesDBHandler) SelectNode(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.GraphNode, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_node($1, $2)`,
		workflowID,
		id,
	)

	node := &model.GraphNode{}
	err := row.Scan(
		&node.ID,
		&node.WorkflowID,
		pq.Array(&node.Labels),
		&node.Properties,
		pq.Array(&node.BridgedIDs),
		&node.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return node, nil
}

// SelectNodesByBridgedIDs retrieves nodes whose bridged identifier set
// intersects the given chunk identifiers
func (h *NodesDBHandler) SelectNodesByBridgedIDs(ctx context.Context, workflowID uuid.UUID, bridgedIDs []uuid.UUID) ([]*model.GraphNode, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_nodes_by_bridged_ids($1, $2)`,
		workflowID,
		pq.Array(bridgedIDs),
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var nodes []*model.GraphNode
	for rows.Next() {
		node := &model.GraphNode{}
		err := rows.Scan(
			&node.ID,
			&node.WorkflowID,
			pq.Array(&node.Labels),
			&node.Properties,
			pq.Array(&node.BridgedIDs),
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

// DeleteNode deletes a node by ID within a workflow, cascading to its edges
func (h *NodesDBHandler) DeleteNode(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_node($1, $2)`,
		workflowID,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
