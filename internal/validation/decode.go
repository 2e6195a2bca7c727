package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSchemaValidation wraps every schema violation.
var ErrSchemaValidation = errors.New("schema validation failed")

// IsYAMLPath reports whether the file extension is .yaml or .yml.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// YAMLToJSON re-encodes a YAML document as JSON so that one schema and one
// set of json tags serve both formats.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML data: %w", err)
	}

	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}

// normalizeYAML turns map[interface{}]interface{} nodes into string-keyed maps.
func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			node[k] = normalizeYAML(child)
		}
		return node
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		for i, child := range node {
			node[i] = normalizeYAML(child)
		}
		return node
	default:
		return v
	}
}

// DecodeFile reads a JSON or YAML data file, validates it against schemaPath
// and unmarshals it into out.
func DecodeFile(v SchemaValidator, path, schemaPath string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return DecodeBytes(v, data, IsYAMLPath(path), schemaPath, out)
}

// DecodeBytes is DecodeFile for in-memory data.
func DecodeBytes(v SchemaValidator, data []byte, isYAML bool, schemaPath string, out interface{}) error {
	if isYAML {
		converted, err := YAMLToJSON(data)
		if err != nil {
			return err
		}
		data = converted
	}

	if v != nil {
		if err := v.ValidateBytes(data, schemaPath); err != nil {
			return err
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}
	return nil
}
