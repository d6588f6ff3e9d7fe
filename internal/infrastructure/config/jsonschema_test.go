package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSONListsSections(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "flexpane configuration", doc.Title)
	for _, section := range []string{"logging", "gesture", "resize", "animation", "split_screen", "size_hints"} {
		assert.Contains(t, doc.Properties, section)
	}
	assert.Contains(t, string(data), `"bulldozer"`)
}
