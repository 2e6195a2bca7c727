// Package configs ships the JSON schemas and sample data files.
package configs

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"strings"
)

// SchemaDir is the project-relative directory holding the schemas.
const SchemaDir = "configs/schemas"

// ErrSchemaNotEmbedded is returned for paths outside the embedded schema set.
var ErrSchemaNotEmbedded = errors.New("schema not embedded")

//go:embed schemas/*.json
var schemas embed.FS

// ReadSchema returns the embedded copy of a schema given its project-relative
// path, e.g. "configs/schemas/loot_table.schema.json".
func ReadSchema(schemaPath string) ([]byte, error) {
	clean := path.Clean(strings.ReplaceAll(schemaPath, "\\", "/"))
	if !strings.HasPrefix(clean, SchemaDir+"/") {
		return nil, ErrSchemaNotEmbedded
	}
	data, err := schemas.ReadFile(strings.TrimPrefix(clean, "configs/"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSchemaNotEmbedded
	}
	return data, err
}
