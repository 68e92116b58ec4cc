package store

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"

	"storefront-service/internal/domain"
)

// FileSource reads the catalog from a JSON document with top-level
// "categories" and "products" arrays.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the document path.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load catalog file")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", s.path)
	}

	var c domain.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parse catalog file %s", s.path)
	}
	return &c, nil
}

// Close is a no-op; the file is opened and closed on every Load.
func (s *FileSource) Close() error {
	return nil
}
