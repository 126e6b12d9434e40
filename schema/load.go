package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/teranos/taxogen/errors"
)

// DefaultFile is the schema file name inside a version directory.
const DefaultFile = "entities.yml"

// VersionDir is the directory holding one taxonomy version ("v2").
func VersionDir(root string, version int) string {
	return filepath.Join(root, fmt.Sprintf("v%d", version))
}

// Path resolves the schema file for a version: <root>/v<N>/<file>.
func Path(root, file string, version int) string {
	if file == "" {
		file = DefaultFile
	}
	return filepath.Join(VersionDir(root, version), file)
}

// Load reads, parses and validates a schema file.
func Load(path string, opts ...Option) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ValidationError{
				Kind:    SchemaNotFound,
				Message: fmt.Sprintf("Schema file not found: %s", path),
			}
		}
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Validate(doc, opts...)
}
