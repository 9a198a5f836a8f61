package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed workflows.sql
var workflowsSQL string

//go:embed chunks.sql
var chunksSQL string

//go:embed nodes.sql
var nodesSQL string

//go:embed edges.sql
var edgesSQL string

// Function lists for verification
var WorkflowsFunctions = []string{
	"init_workflows",
	"insert_workflow",
	"select_workflow",
	"select_all_workflows",
	"delete_workflow",
}

var ChunksFunctions = []string{
	"init_chunks",
	"insert_chunk",
	"select_chunk",
	"select_chunks_by_workflow",
	"select_chunks_by_similarity",
	"delete_chunk",
}

var NodesFunctions = []string{
	"init_nodes",
	"insert_node",
	"select_node",
	"select_nodes_by_bridged_ids",
	"delete_node",
}

var EdgesFunctions = []string{
	"init_edges",
	"insert_edge",
	"select_edge",
	"select_edges_from_node",
	"delete_edge",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadWorkflowsSql loads workflow-related SQL functions
func LoadWorkflowsSql(db *sql.DB, force bool) error {
	return loadFunctions(db, force, workflowsSQL, WorkflowsFunctions, "workflows")
}

// LoadChunksSql loads chunk-related SQL functions
func LoadChunksSql(db *sql.DB, force bool) error {
	return loadFunctions(db, force, chunksSQL, ChunksFunctions, "chunks")
}

// LoadNodesSql loads node-related SQL functions
func LoadNodesSql(db *sql.DB, force bool) error {
	return loadFunctions(db, force, nodesSQL, NodesFunctions, "nodes")
}

// LoadEdgesSql loads edge-related SQL functions
func LoadEdgesSql(db *sql.DB, force bool) error {
	return loadFunctions(db, force, edgesSQL, EdgesFunctions, "edges")
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadWorkflowsSql(db, force); err != nil {
		return err
	}

	if err := LoadChunksSql(db, force); err != nil {
		return err
	}

	if err := LoadNodesSql(db, force); err != nil {
		return err
	}

	if err := LoadEdgesSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadFunctions executes the given SQL and verifies the expected functions
// exist afterwards. Without force it skips execution when all functions
// are already present.
func loadFunctions(db *sql.DB, force bool, functionsSQL string, functions []string, name string) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(functionsSQL)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
