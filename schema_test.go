package toolschema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectContract_Classification(t *testing.T) {
	schemaMap, err := reflectContract(reflect.TypeFor[classificationDocument]())
	require.NoError(t, err)
	assert.Equal(t, "object", schemaMap["type"])
	_, hasSchema := schemaMap["$schema"]
	assert.False(t, hasSchema)
	_, hasDefs := schemaMap["$defs"]
	assert.False(t, hasDefs)

	inner, ok := schemaMap["additionalProperties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", inner["type"])
	leaf, ok := inner["additionalProperties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boolean", leaf["type"])
}

func TestClassificationContract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", `{}`, true},
		{"class without methods", `{"A": {}}`, true},
		{"flags", `{"A": {"m1": true, "m2": false}, "B": {"x": true}}`, true},
		{"string flag", `{"A": {"m1": "yes"}}`, false},
		{"list of methods", `{"A": ["m1"]}`, false},
		{"top-level array", `[]`, false},
		{"flat flag", `{"A": true}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			err := validateClassificationValue(v)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
			var ae *ArtifactError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, artifactClassification, ae.Artifact)
		})
	}
}

func TestCompileRawSchema_DoesNotMutate(t *testing.T) {
	schemaMap := map[string]any{
		"type":       "object",
		"properties": map[string]any{"n": map[string]any{"type": "integer"}},
	}
	before, _ := json.Marshal(schemaMap)
	resolved, err := compileRawSchema(schemaMap)
	require.NoError(t, err)
	after, _ := json.Marshal(schemaMap)
	assert.JSONEq(t, string(before), string(after))

	require.NoError(t, resolved.Validate(map[string]any{"n": float64(3)}))
	require.Error(t, resolved.Validate(map[string]any{"n": "three"}))
}

func TestStripSchemaIDs(t *testing.T) {
	schemaMap := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id":     "root",
		"properties": map[string]any{
			"a": map[string]any{"id": "a", "type": "string"},
		},
		"anyOf": []any{map[string]any{"$id": "branch"}},
	}
	stripSchemaIDs(schemaMap)
	assert.Equal(t, map[string]any{
		"properties": map[string]any{
			"a": map[string]any{"type": "string"},
		},
		"anyOf": []any{map[string]any{}},
	}, schemaMap)
}

func TestWalkSchema_Nil(t *testing.T) {
	calls := 0
	walkSchema(nil, func(map[string]any) { calls++ })
	assert.Zero(t, calls)
}
