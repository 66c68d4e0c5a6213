package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed plan.schema.yaml
var planSchemaYAML []byte

// Validator handles JSON schema validation of plan documents
type Validator struct {
	planSchema *jsonschema.Schema
}

// NewValidator compiles the embedded plan schema
func NewValidator() (*Validator, error) {
	schema, err := compileSchema(planSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to compile plan schema: %w", err)
	}
	return &Validator{planSchema: schema}, nil
}

// ValidatePlan validates a raw plan document against the schema. The document
// is the YAML file content, not a decoded struct, so unknown fields and type
// mismatches are caught before decoding.
func (v *Validator) ValidatePlan(document []byte) error {
	doc, err := toJSONValue(document)
	if err != nil {
		return err
	}
	return v.planSchema.Validate(doc)
}

// compileSchema compiles a schema given as YAML (or JSON, which is a subset)
func compileSchema(data []byte) (*jsonschema.Schema, error) {
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonschema.CompileString("plan.schema.yaml", string(jsonData))
}

// toJSONValue round-trips a YAML document through JSON so the schema
// validator sees the value types encoding/json would produce.
func toJSONValue(document []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(document, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
