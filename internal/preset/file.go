package preset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"ArticleCurator/internal/domain"
)

//go:embed presets.schema.json
var presetsSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

type presetFile struct {
	Presets []Preset `json:"presets"`
}

// LoadFile reads custom presets from a YAML or JSON file.
func LoadFile(path string) ([]Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	presets, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return presets, nil
}

// Parse decodes and schema-validates a presets document. JSON is accepted as
// a subset of YAML.
func Parse(raw []byte) ([]Preset, error) {
	doc, err := decodeYAML(raw)
	if err != nil {
		return nil, err
	}
	return validatePresets(doc)
}

// LoadCriteriaFile reads one criteria object from a YAML or JSON file. It is
// validated with the same rules as a preset's criteria.
func LoadCriteriaFile(path string) (domain.Criteria, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Criteria{}, fmt.Errorf("read criteria %s: %w", path, err)
	}
	criteria, err := ParseCriteria(raw)
	if err != nil {
		return domain.Criteria{}, fmt.Errorf("criteria %s: %w", path, err)
	}
	return criteria, nil
}

// ParseCriteria decodes and validates a bare criteria document.
func ParseCriteria(raw []byte) (domain.Criteria, error) {
	doc, err := decodeYAML(raw)
	if err != nil {
		return domain.Criteria{}, err
	}

	wrapped := map[string]any{
		"presets": []any{map[string]any{"name": CustomName, "criteria": doc}},
	}
	presets, err := validatePresets(wrapped)
	if err != nil {
		return domain.Criteria{}, err
	}
	return presets[0].Criteria, nil
}

func decodeYAML(raw []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document is empty")
	}
	return doc, nil
}

func validatePresets(doc any) ([]Preset, error) {
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}

	value, err := decodeJSON(normalized)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var file presetFile
	if err := json.Unmarshal(normalized, &file); err != nil {
		return nil, fmt.Errorf("unmarshal presets: %w", err)
	}
	return file.Presets, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("presets.schema.json", strings.NewReader(presetsSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("presets.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeJSON(raw []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("trailing content")
	}
	return value, nil
}
