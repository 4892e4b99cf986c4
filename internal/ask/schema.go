package ask

import (
	"encoding/json"
	"sort"
	"strconv"
)

type FieldType string

const (
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldNull    FieldType = "null"
)

// Schema is a structural summary of sample data: field names and types, no
// values. It is attached to generation requests so the model knows the shape
// of the data the generated code will receive.
type Schema struct {
	Type   FieldType `json:"type"`
	Key    string    `json:"key,omitempty"`
	Path   string    `json:"path"`
	Fields []*Schema `json:"value,omitempty"`
}

// InferSchema builds a schema tree from a decoded JSON value. When
// compactArrays is true an array is described by its first element only,
// otherwise every element is described.
func InferSchema(value any, compactArrays bool) *Schema {
	return infer(value, "", "", compactArrays)
}

// InferSchemaJSON decodes raw JSON and infers its schema. Unparseable input
// yields nil.
func InferSchemaJSON(raw json.RawMessage, compactArrays bool) *Schema {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return InferSchema(value, compactArrays)
}

func infer(value any, key string, path string, compactArrays bool) *Schema {
	s := &Schema{Key: key, Path: path}

	switch v := value.(type) {
	case map[string]any:
		s.Type = FieldObject
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.Fields = append(s.Fields, infer(v[k], k, path+"."+k, compactArrays))
		}
	case []any:
		s.Type = FieldArray
		if compactArrays {
			if len(v) > 0 {
				s.Fields = append(s.Fields, infer(v[0], "0", path+"[0]", compactArrays))
			}
		} else {
			for i, item := range v {
				idx := strconv.Itoa(i)
				s.Fields = append(s.Fields, infer(item, idx, path+"["+idx+"]", compactArrays))
			}
		}
	case string:
		s.Type = FieldString
	case float64, json.Number:
		s.Type = FieldNumber
	case bool:
		s.Type = FieldBoolean
	default:
		s.Type = FieldNull
	}

	return s
}

// Empty reports whether the schema carries no usable shape information: a nil
// schema, or an object/array with no fields.
func (slf *Schema) Empty() bool {
	if slf == nil {
		return true
	}
	switch slf.Type {
	case FieldObject, FieldArray:
		return len(slf.Fields) == 0
	case FieldNull:
		return true
	default:
		return false
	}
}
