package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON schema of Config.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:              "toml",
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/flexpane/config.schema.json"
	schema.Title = "flexpane configuration"
	schema.Description = "Configuration schema for the flexpane layout engine and its terminal playground"
	return schema
}

// SchemaJSON returns the indented JSON schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// WriteSchemaFile writes the JSON schema next to the config file.
func WriteSchemaFile(path string) error {
	data, err := SchemaJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
