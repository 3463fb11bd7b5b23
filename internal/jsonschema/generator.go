// Package jsonschema provides JSON Schema generation for pojo2json configuration files.
package jsonschema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/luchuanbaker/MyPojoToJson/internal/config"
)

const SchemaID = "https://raw.githubusercontent.com/luchuanbaker/MyPojoToJson/main/schema.json"

// Generate creates a JSON Schema from the Config type for editor autocomplete and validation.
func Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		// property names follow the yaml keys, not the Go field names
		FieldNameTag:   "yaml",
		DoNotReference: true,
	}

	s := r.Reflect(&config.Config{})

	s.ID = SchemaID
	s.Title = "pojo2json"
	s.Description = "Schema for pojo2json YAML configuration files (" + config.DefaultFileName + ")"

	return json.MarshalIndent(s, "", "  ")
}
