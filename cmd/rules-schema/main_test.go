package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/duetdiary/duet-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeSchema(&buf))

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))

	assert.Equal(t, schemaID, schema["$id"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.NotContains(t, schema, "required", "every section falls back to defaults")

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"tags", "interactions", "anxiety_clues", "repair_signals", "conflict", "love_language", "stop_words"} {
		assert.Contains(t, props, key)
	}

	conflict, ok := props["conflict"].(map[string]interface{})
	require.True(t, ok, "nested types are inlined")
	assert.Contains(t, conflict["properties"], "criticism")
}

func TestWriteDefaultsRoundTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeDefaults(&buf))

	var set rules.Set
	require.NoError(t, json.Unmarshal(buf.Bytes(), &set))
	assert.Equal(t, rules.Default(), set)

	_, err := rules.Compile(set)
	assert.NoError(t, err)
}
