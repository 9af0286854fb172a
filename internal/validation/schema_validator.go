// Package validation checks wheel definition files against JSON schemas
// before they are seeded. Runtime normalisation uses validator/v10; the
// schemas catch typos and unknown keys that struct decoding silently drops.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Schema locations relative to the project root
const (
	WheelSchemaPath    = "configs/schemas/wheel.schema.json"
	DefaultsSchemaPath = "configs/schemas/defaults.schema.json"
)

// SchemaValidator validates JSON or YAML documents against schema files
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
	ValidateYAML(data []byte, schemaPath string) error
}

// Violation is one failed keyword at one location in the document
type Violation struct {
	Location string
	Keyword  string
}

func (v Violation) String() string {
	if v.Keyword == "" {
		return fmt.Sprintf("  - at %s: validation failed", v.Location)
	}
	return fmt.Sprintf("  - at %s: %s validation failed", v.Location, v.Keyword)
}

// SchemaError lists every violation found in a document
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, "schema validation failed:")
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

type schemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator returns a validator that compiles each schema once
func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile picks JSON or YAML by extension
func (v *schemaValidator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	switch strings.ToLower(filepath.Ext(dataPath)) {
	case ".yaml", ".yml":
		return v.ValidateYAML(data, schemaPath)
	}
	return v.ValidateBytes(data, schemaPath)
}

// ValidateYAML converts the document to JSON first so the schema sees JSON
// types only
func (v *schemaValidator) ValidateYAML(data []byte, schemaPath string) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML data: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert YAML data: %w", err)
	}
	return v.ValidateBytes(raw, schemaPath)
}

func (v *schemaValidator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.compile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	err = schema.Validate(doc)
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return &SchemaError{Violations: flatten(verr, nil)}
	}
	return err
}

func (v *schemaValidator) compile(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[schemaPath]; ok {
		return s, nil
	}

	path, err := findSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(schemaPath, doc); err != nil {
		return nil, err
	}
	s, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, err
	}
	v.schemas[schemaPath] = s
	return s, nil
}

// flatten walks the cause tree depth first. Group nodes without a keyword are
// kept only when they have no more specific causes.
func flatten(err *jsonschema.ValidationError, out []Violation) []Violation {
	keyword := ""
	if err.ErrorKind != nil {
		keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	if keyword != "" || len(err.Causes) == 0 {
		loc := "(root)"
		if len(err.InstanceLocation) > 0 {
			loc = "/" + strings.Join(err.InstanceLocation, "/")
		}
		out = append(out, Violation{Location: loc, Keyword: keyword})
	}
	for _, c := range err.Causes {
		out = flatten(c, out)
	}
	return out
}

// findSchema resolves a relative schema path against the working directory
// and then each parent up to the module root, so tests in nested packages
// find the shared configs directory.
func findSchema(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("schema file not found: %s", schemaPath)
}
