package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	loadSql "github.com/Shreekar11/insura-ai-sub005/sql"
	"github.com/google/uuid"
)

// WorkflowsDBHandlerFunctions defines the interface for Workflows database operations.
type WorkflowsDBHandlerFunctions interface {
	InsertWorkflow(ctx context.Context, name string, metadata model.Metadata) (*model.Workflow, error)
	SelectWorkflow(ctx context.Context, id uuid.UUID) (*model.Workflow, error)
	SelectAllWorkflows(ctx context.Context) ([]*model.Workflow, error)
	DeleteWorkflow(ctx context.Context, id uuid.UUID) error
}

// WorkflowsDBHandler handles workflow-related database operations
type WorkflowsDBHandler struct {
	db *helper.Database
}

// NewWorkflowsDBHandler creates a new workflows database handler.
// It initializes the database extensions and loads workflow-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewWorkflowsDBHandler(db *helper.Database, force bool) (*WorkflowsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	workflowsDbHandler := &WorkflowsDBHandler{
		db: db,
	}

	err := loadSql.Init(workflowsDbHandler.db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadWorkflowsSql(workflowsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load workflows sql", err)
	}

	err = workflowsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized WorkflowsDBHandler")

	return workflowsDbHandler, nil
}

// CreateTable creates the 'workflows' table in the database.
// If the table already exists, it does not create it again.
func (h *WorkflowsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_workflows();`)
	if err != nil {
		log.Panicf("error initializing workflows table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table workflows")

	return nil
}

// InsertWorkflow inserts a new workflow scope
func (h *WorkflowsDBHandler) InsertWorkflow(ctx context.Context, name string, metadata model.Metadata) (*model.Workflow, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_workflow($1, $2)`,
		name,
		metadata,
	)

	workflow := &model.Workflow{}
	err := row.Scan(
		&workflow.ID,
		&workflow.Name,
		&workflow.Metadata,
		&workflow.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return workflow, nil
}

// SelectWorkflow retrieves a workflow by ID.
// A missing workflow maps to model.ErrWorkflowNotFound so callers can
// distinguish an unknown scope from a query error.
func (h *WorkflowsDBHandler) SelectWorkflow(ctx context.Context, id uuid.UUID) (*model.Workflow, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_workflow($1)`,
		id,
	)

	workflow := &model.Workflow{}
	err := row.Scan(
		&workflow.ID,
		&workflow.Name,
		&workflow.Metadata,
		&workflow.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrWorkflowNotFound, id)
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return workflow, nil
}

// SelectAllWorkflows retrieves all workflows ordered by creation time
func (h *WorkflowsDBHandler) SelectAllWorkflows(ctx context.Context) ([]*model.Workflow, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_all_workflows()`,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var workflows []*model.Workflow
	for rows.Next() {
		workflow := &model.Workflow{}
		err := rows.Scan(
			&workflow.ID,
			&workflow.Name,
			&workflow.Metadata,
			&workflow.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		workflows = append(workflows, workflow)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return workflows, nil
}

// DeleteWorkflow deletes a workflow by ID, cascading to its chunks, nodes and edges
func (h *WorkflowsDBHandler) DeleteWorkflow(ctx context.Context, id uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_workflow($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
