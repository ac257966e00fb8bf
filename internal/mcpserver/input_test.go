package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
)

func TestDocInput_ResolveFile(t *testing.T) {
	docCache.reset()
	input := docInput{File: "../../testdata/order-service.yaml"}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "3.0.0", result.Version)
}

func TestDocInput_ResolveContent(t *testing.T) {
	docCache.reset()
	content := `asyncapi: 3.0.0
info:
  title: Test
  version: "1.0"
`
	input := docInput{Content: content}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "3.0.0", result.Version)
}

func TestDocInput_ResolveNoneProvided(t *testing.T) {
	input := docInput{}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestDocInput_ResolveBothProvided(t *testing.T) {
	input := docInput{File: "foo.yaml", Content: "bar"}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestDocInput_ResolveFileNotFound(t *testing.T) {
	docCache.reset()
	input := docInput{File: "/nonexistent/path.yaml"}
	_, err := input.resolve()
	assert.Error(t, err)
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	input := docInput{File: "../../testdata/order-service.yaml"}

	// First call populates cache.
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	// Second call should return the same pointer (cache hit).
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()

	// Create a temp file.
	dir := t.TempDir()
	path := filepath.Join(dir, "asyncapi.yaml")
	content1 := []byte(`asyncapi: 3.0.0
info:
  title: Test V1
  version: "1.0"
`)
	require.NoError(t, os.WriteFile(path, content1, 0644))

	input := docInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	require.NotNil(t, result1.Document)
	require.NotNil(t, result1.Document.Info)
	assert.Equal(t, "Test V1", result1.Document.Info.Title)

	// Modify the file (change mtime).
	content2 := []byte(`asyncapi: 3.0.0
info:
  title: Test V2
  version: "2.0"
`)
	require.NoError(t, os.WriteFile(path, content2, 0644))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	// Should be a different result since mtime changed.
	assert.NotSame(t, result1, result2)
	require.NotNil(t, result2.Document)
	require.NotNil(t, result2.Document.Info)
	assert.Equal(t, "Test V2", result2.Document.Info.Title)
}

func TestDocCache_ContentHash(t *testing.T) {
	docCache.reset()
	content := `asyncapi: 3.0.0
info:
  title: Hash Test
  version: "1.0"
`
	input := docInput{Content: content}

	result1, err := input.resolve()
	require.NoError(t, err)

	// Same content should hit cache.
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2)
}

func TestDocCache_LRUEviction(t *testing.T) {
	docCache.reset()

	// Insert 11 documents into a cache of size 10.
	// Track the first content's cache key to verify it is evicted.
	var firstKey string
	for i := range 11 {
		content := `asyncapi: 3.0.0
info:
  title: "Doc ` + string(rune('A'+i)) + `"
  version: "1.0"
`
		if i == 0 {
			firstKey = makeCacheKey(docInput{Content: content}, nil)
		}
		input := docInput{Content: content}
		_, err := input.resolve()
		require.NoError(t, err)
	}

	// Cache should not exceed max size.
	assert.Equal(t, 10, docCache.size())

	// The first entry (oldest) should have been evicted.
	assert.Nil(t, docCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestMakeCacheKey_ExtraOptionsDisableCaching(t *testing.T) {
	input := docInput{Content: "asyncapi: 3.0.0"}
	assert.NotEmpty(t, makeCacheKey(input, nil))
	assert.Empty(t, makeCacheKey(input, []parser.Option{parser.WithPreserveOrder(true)}))
}
