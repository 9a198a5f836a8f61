package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareModel(t *testing.T) {
	t.Run("Return cached model path without downloading", func(t *testing.T) {
		modelName := "sentence-transformers/all-MiniLM-L6-v2"
		modelPath := filepath.Join("./models", "sentence-transformers_all-MiniLM-L6-v2")

		// Pre-create the model directory so no download is attempted
		err := os.MkdirAll(modelPath, 0755)
		require.NoError(t, err, "Expected model directory creation to succeed")
		defer os.RemoveAll("./models")

		path, err := PrepareModel(modelName, "onnx/model.onnx")
		assert.NoError(t, err, "Expected PrepareModel to not return an error for cached model")
		assert.Equal(t, modelPath, path, "Expected PrepareModel to return the cached model path")
	})
}
