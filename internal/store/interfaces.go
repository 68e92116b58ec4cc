package store

import (
	"context"

	"storefront-service/internal/domain"
)

// Source kinds accepted by CATALOG_SOURCE.
const (
	KindFile     = "file"
	KindPostgres = "postgres"
)

// CatalogSource reads a complete, read-only catalog snapshot.
// Every Load call reads the backing store again; nothing is cached.
type CatalogSource interface {
	Load(ctx context.Context) (*domain.Catalog, error)
	Close() error
}
