package ask

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldByKey(t *testing.T, s *Schema, key string) *Schema {
	t.Helper()
	for _, f := range s.Fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("field %q not found", key)
	return nil
}

func TestInferSchema_ObjectTypes(t *testing.T) {
	sample := map[string]any{
		"name":   "Jo",
		"age":    float64(42),
		"active": true,
		"extra":  nil,
		"tags":   []any{"a", "b"},
	}

	schema := InferSchema(sample, true)
	require.NotNil(t, schema)
	assert.Equal(t, FieldObject, schema.Type)
	assert.Len(t, schema.Fields, 5)

	assert.Equal(t, FieldString, fieldByKey(t, schema, "name").Type)
	assert.Equal(t, FieldNumber, fieldByKey(t, schema, "age").Type)
	assert.Equal(t, FieldBoolean, fieldByKey(t, schema, "active").Type)
	assert.Equal(t, FieldNull, fieldByKey(t, schema, "extra").Type)

	tags := fieldByKey(t, schema, "tags")
	assert.Equal(t, FieldArray, tags.Type)
	// compact arrays keep only the first element
	require.Len(t, tags.Fields, 1)
	assert.Equal(t, FieldString, tags.Fields[0].Type)
	assert.Equal(t, ".tags[0]", tags.Fields[0].Path)
}

func TestInferSchema_NestedPaths(t *testing.T) {
	sample := map[string]any{
		"user": map[string]any{
			"address": map[string]any{"city": "Lyon"},
		},
	}

	schema := InferSchema(sample, true)
	user := fieldByKey(t, schema, "user")
	address := fieldByKey(t, user, "address")
	city := fieldByKey(t, address, "city")

	assert.Equal(t, ".user.address.city", city.Path)
	assert.Equal(t, FieldString, city.Type)
}

func TestInferSchema_FullArrays(t *testing.T) {
	schema := InferSchema([]any{"a", float64(1)}, false)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, FieldString, schema.Fields[0].Type)
	assert.Equal(t, FieldNumber, schema.Fields[1].Type)
}

func TestInferSchemaJSON(t *testing.T) {
	schema := InferSchemaJSON(json.RawMessage(`[{"a":1,"b":2}]`), true)
	require.NotNil(t, schema)
	assert.Equal(t, FieldArray, schema.Type)
	assert.False(t, schema.Empty())

	assert.Nil(t, InferSchemaJSON(nil, true))
	assert.Nil(t, InferSchemaJSON(json.RawMessage(`{not json`), true))
}

func TestSchemaEmpty(t *testing.T) {
	var nilSchema *Schema
	assert.True(t, nilSchema.Empty())
	assert.True(t, InferSchema(map[string]any{}, true).Empty())
	assert.True(t, InferSchema([]any{}, true).Empty())
	assert.True(t, InferSchema(nil, true).Empty())

	assert.False(t, InferSchema("plain", true).Empty())
	assert.False(t, InferSchema(map[string]any{"a": float64(1)}, true).Empty())
}
