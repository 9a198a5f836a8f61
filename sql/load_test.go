package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		// Verify pgvector extension is created
		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgvector extension should be created")

		// Verify pgcrypto extension is created
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'pgcrypto');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgcrypto extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		err = Init(db.Instance)
		assert.NoError(t, err)
	})
}

func TestLoadWorkflowsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Load workflows SQL functions", func(t *testing.T) {
		err := LoadWorkflowsSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range WorkflowsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load workflows SQL is idempotent without force", func(t *testing.T) {
		err := LoadWorkflowsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load workflows SQL with force reloads", func(t *testing.T) {
		err := LoadWorkflowsSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadChunksSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Chunks reference workflows
	err := LoadWorkflowsSql(db.Instance, false)
	require.NoError(t, err)

	t.Run("Load chunks SQL functions", func(t *testing.T) {
		err := LoadChunksSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range ChunksFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load chunks SQL is idempotent without force", func(t *testing.T) {
		err := LoadChunksSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load chunks SQL with force reloads", func(t *testing.T) {
		err := LoadChunksSql(db.Instance, true)
		assert.NoError(t, err)

		for _, funcName := range ChunksFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist after force reload", funcName)
		}
	})
}

func TestLoadNodesSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := LoadWorkflowsSql(db.Instance, false)
	require.NoError(t, err)

	t.Run("Load nodes SQL functions", func(t *testing.T) {
		err := LoadNodesSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range NodesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load nodes SQL is idempotent without force", func(t *testing.T) {
		err := LoadNodesSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load nodes SQL with force reloads", func(t *testing.T) {
		err := LoadNodesSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadEdgesSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	err := LoadWorkflowsSql(db.Instance, false)
	require.NoError(t, err)
	err = LoadNodesSql(db.Instance, false)
	require.NoError(t, err)

	t.Run("Load edges SQL functions", func(t *testing.T) {
		err := LoadEdgesSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range EdgesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load edges SQL is idempotent without force", func(t *testing.T) {
		err := LoadEdgesSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load edges SQL with force reloads", func(t *testing.T) {
		err := LoadEdgesSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Load all SQL functions", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)

		allFunctions := [][]string{WorkflowsFunctions, ChunksFunctions, NodesFunctions, EdgesFunctions}
		for _, functions := range allFunctions {
			for _, funcName := range functions {
				var exists bool
				err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
				require.NoError(t, err)
				assert.True(t, exists, "Function %s should exist", funcName)
			}
		}
	})

	t.Run("Load all SQL is idempotent without force", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load all SQL with force reloads", func(t *testing.T) {
		err := LoadAllSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestCheckFunctions(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Check functions returns false when functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false for nonexistent function")
	})

	t.Run("Check functions returns true when all functions exist", func(t *testing.T) {
		err := LoadWorkflowsSql(db.Instance, false)
		require.NoError(t, err)

		exists, err := checkFunctions(db.Instance, WorkflowsFunctions)
		assert.NoError(t, err)
		assert.True(t, exists, "Should return true when all functions exist")
	})

	t.Run("Check functions returns false when some functions don't exist", func(t *testing.T) {
		mixedFunctions := append([]string{"init_workflows"}, "nonexistent_function")
		exists, err := checkFunctions(db.Instance, mixedFunctions)
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false when some functions don't exist")
	})
}

func TestEmbeddedSQL(t *testing.T) {
	t.Run("Init SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, initSQL, "initSQL should be embedded")
		assert.Contains(t, initSQL, "CREATE EXTENSION", "Should contain CREATE EXTENSION")
	})

	t.Run("Workflows SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, workflowsSQL, "workflowsSQL should be embedded")
		assert.Contains(t, workflowsSQL, "CREATE", "Should contain CREATE statements")
	})

	t.Run("Chunks SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, chunksSQL, "chunksSQL should be embedded")
		assert.Contains(t, chunksSQL, "select_chunks_by_similarity", "Should contain the similarity function")
	})

	t.Run("Nodes SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, nodesSQL, "nodesSQL should be embedded")
		assert.Contains(t, nodesSQL, "select_nodes_by_bridged_ids", "Should contain the bridge mapping function")
	})

	t.Run("Edges SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, edgesSQL, "edgesSQL should be embedded")
		assert.Contains(t, edgesSQL, "select_edges_from_node", "Should contain the edge listing function")
	})
}
