package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"storefront-service/internal/domain"
)

const (
	listCategoriesQuery = `
		SELECT id, slug, name
		FROM storefront.categories
		ORDER BY id ASC;
	`
	listProductsQuery = `
		SELECT id, category_id, name, price_cents, COALESCE(description, ''), COALESCE(img_src, '')
		FROM storefront.products
		ORDER BY id ASC;
	`
)

// PostgresSource reads the catalog snapshot from the storefront schema.
// It never writes.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a PostgresSource over an open pool.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgres opens a lib/pq pool and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: failed to ping database: %w", err)
	}
	return db, nil
}

// snapshotTxOptions makes both queries see the same committed state.
var snapshotTxOptions = &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}

// Load reads categories and products inside one read-only repeatable-read
// transaction.
func (s *PostgresSource) Load(ctx context.Context) (*domain.Catalog, error) {
	tx, err := s.db.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return nil, fmt.Errorf("store: failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Warn("failed to roll back snapshot transaction", "error", rbErr)
		}
	}()

	categories, err := listCategories(ctx, tx)
	if err != nil {
		return nil, err
	}
	products, err := listProducts(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: failed to commit snapshot transaction: %w", err)
	}
	return &domain.Catalog{Categories: categories, Products: products}, nil
}

func listCategories(ctx context.Context, tx *sql.Tx) ([]domain.Category, error) {
	rows, err := tx.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("store: failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("store: failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: category iteration error: %w", err)
	}
	return categories, nil
}

func listProducts(ctx context.Context, tx *sql.Tx) ([]domain.Product, error) {
	rows, err := tx.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("store: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Description, &p.ImgSrc); err != nil {
			return nil, fmt.Errorf("store: failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: product iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresSource) Close() error {
	if s.db == nil {
		return nil
	}
	slog.Info("closing database connection pool")
	if err := s.db.Close(); err != nil {
		slog.Error("failed to close database connection pool", "error", err)
		return err
	}
	return nil
}
