package store

import (
	"context"
	"fmt"
)

// Options selects and configures a catalog source.
type Options struct {
	Kind     string
	DataPath string
	DSN      string
}

// Open builds the catalog source named by opts.Kind.
func Open(ctx context.Context, opts Options) (CatalogSource, error) {
	switch opts.Kind {
	case KindFile, "":
		return NewFileSource(opts.DataPath), nil
	case KindPostgres:
		db, err := OpenPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresSource(db), nil
	default:
		return nil, fmt.Errorf("store: unknown catalog source %q", opts.Kind)
	}
}
