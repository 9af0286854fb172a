package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "test.schema.json", `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`)

	tests := []struct {
		name     string
		file     string
		data     string
		errorMsg string
	}{
		{name: "valid json", file: "a.json", data: `{"name": "John", "age": 30}`},
		{name: "valid yaml", file: "a.yaml", data: "name: John\nage: 30\n"},
		{name: "missing required field", file: "b.json", data: `{"age": 25}`, errorMsg: "required"},
		{name: "wrong type in yaml", file: "c.yml", data: "name: John\nage: thirty\n", errorMsg: "/age"},
		{name: "constraint violation", file: "d.json", data: `{"name": "John", "age": -5}`, errorMsg: "/age"},
		{name: "invalid json", file: "e.json", data: `{"name": "John", "age": }`, errorMsg: "parse JSON"},
		{name: "invalid yaml", file: "f.yaml", data: "name: [John\n", errorMsg: "parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(writeFile(t, tmpDir, tt.file, tt.data), schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestSchemaValidator_MissingFiles(t *testing.T) {
	v := NewSchemaValidator()
	tmpDir := t.TempDir()

	dataPath := writeFile(t, tmpDir, "data.json", `{}`)
	assert.ErrorContains(t, v.ValidateFile(dataPath, "nonexistent.schema.json"), "failed to load schema")

	schemaPath := writeFile(t, tmpDir, "s.schema.json", `{"type": "object"}`)
	assert.ErrorContains(t, v.ValidateFile(filepath.Join(tmpDir, "none.json"), schemaPath), "failed to read data file")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*schemaValidator)
	schemaPath := writeFile(t, t.TempDir(), "test.schema.json", `{"type": "object"}`)

	data := []byte(`{"test": "value"}`)
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestWheelSchema_ShippedDefinitions(t *testing.T) {
	v := NewSchemaValidator()
	dir := "../../configs/wheels"

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		schema := WheelSchemaPath
		if e.Name() == "default.yaml" {
			schema = DefaultsSchemaPath
		}
		assert.NoError(t, v.ValidateFile(filepath.Join(dir, e.Name()), schema), e.Name())
	}
}

func TestWheelSchema_Rejections(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{
			name:     "missing code",
			data:     "prizes:\n  - id: a\n",
			errorMsg: "required",
		},
		{
			name:     "negative weight",
			data:     "code: X\nprizes:\n  - id: a\n    weight: -1\n",
			errorMsg: "/prizes/0/weight",
		},
		{
			name:     "bad color",
			data:     "code: X\nprizes:\n  - id: a\n    color: gold\n",
			errorMsg: "/prizes/0/color",
		},
		{
			name:     "unknown field",
			data:     "code: X\nprize: []\n",
			errorMsg: "additionalProperties",
		},
		{
			name:     "stock below unlimited",
			data:     "code: X\nprizes:\n  - id: a\n    stock: -2\n",
			errorMsg: "/prizes/0/stock",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, v.ValidateYAML([]byte(tt.data), WheelSchemaPath), tt.errorMsg)
		})
	}
}

func TestSchemaError_ListsEveryViolation(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateYAML([]byte("code: X\nprizes:\n  - id: a\n    weight: -1\n    color: gold\n"), WheelSchemaPath)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	var locations []string
	for _, viol := range schemaErr.Violations {
		locations = append(locations, viol.Location)
	}
	assert.Contains(t, locations, "/prizes/0/weight")
	assert.Contains(t, locations, "/prizes/0/color")
}
