package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeDocs(t *testing.T, existing, incoming string) map[string]any {
	t.Helper()
	out, err := MergeJSON([]byte(existing), []byte(incoming))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	return doc
}

func TestMergeJSONNewValueWins(t *testing.T) {
	doc := mergeDocs(t, `{"name": "old", "version": "1.0.0"}`, `{"name": "new"}`)

	assert.Equal(t, "new", doc["name"])
	assert.Equal(t, "1.0.0", doc["version"])
}

func TestMergeJSONNestedObjects(t *testing.T) {
	existing := `{"dependencies": {"left-pad": "^1.0.0", "express": "^3.0.0"}}`
	incoming := `{"dependencies": {"express": "^4.0.0", "mongoose": "^8.0.0"}}`

	doc := mergeDocs(t, existing, incoming)
	deps := doc["dependencies"].(map[string]any)

	assert.Equal(t, "^4.0.0", deps["express"])
	assert.Equal(t, "^1.0.0", deps["left-pad"])
	assert.Equal(t, "^8.0.0", deps["mongoose"])
}

func TestMergeJSONArraysReplacedWholesale(t *testing.T) {
	doc := mergeDocs(t, `{"tags": ["a", "b"]}`, `{"tags": ["c"]}`)
	assert.Equal(t, []any{"c"}, doc["tags"])
}

func TestMergeJSONTypeConflictIncomingWins(t *testing.T) {
	doc := mergeDocs(t, `{"scripts": {"test": "jest"}}`, `{"scripts": "none"}`)
	assert.Equal(t, "none", doc["scripts"])
}

func TestMergeJSONRejectsNonObjects(t *testing.T) {
	_, err := MergeJSON([]byte(`[1, 2]`), []byte(`{}`))
	assert.Error(t, err)

	_, err = MergeJSON([]byte(`{}`), []byte(`not json`))
	assert.Error(t, err)
}
