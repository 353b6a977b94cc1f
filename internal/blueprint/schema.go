package blueprint

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://examforge/blueprint.json"

const schemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "versions": {"type": "integer", "minimum": 1},
    "mcq":      {"type": "integer", "minimum": 0},
    "essay":    {"type": "integer", "minimum": 0},
    "seed":     {"type": "integer", "minimum": 0},
    "levels": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "NB":  {"type": "integer", "minimum": 0},
        "TH":  {"type": "integer", "minimum": 0},
        "VD":  {"type": "integer", "minimum": 0},
        "VDH": {"type": "integer", "minimum": 0}
      }
    },
    "export": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "mode":         {"enum": ["files", "combined"]},
        "format":       {"enum": ["txt", "json"]},
        "show_answers": {"type": "boolean"},
        "show_hints":   {"type": "boolean"}
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(schemaJSON), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks a decoded YAML document against the blueprint schema.
func validate(doc any) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile blueprint schema: %w", err)
	}

	// The validator wants JSON values; round-trip the YAML tree through
	// encoding/json so maps and numbers have the expected shapes.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert to JSON: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("convert to JSON: %w", err)
	}
	return s.Validate(parsed)
}
