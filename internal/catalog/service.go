package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"storefront-service/internal/domain"
)

// Source produces a fresh catalog snapshot. Implementations must not cache
// between calls.
type Source interface {
	Load(ctx context.Context) (*domain.Catalog, error)
}

// CategoryPage is the result of browsing one category with an optional price filter.
// Applied bounds are echoed in major units; an unbounded side is empty.
type CategoryPage struct {
	Category        *domain.Category `json:"category"`
	Products        []domain.Product `json:"products"`
	AppliedMinPrice string           `json:"appliedMinPrice"`
	AppliedMaxPrice string           `json:"appliedMaxPrice"`
	Empty           bool             `json:"empty"`
}

// ProductPage is a product plus its category, when the category exists.
type ProductPage struct {
	Product  *domain.Product  `json:"product"`
	Category *domain.Category `json:"category,omitempty"`
}

// Service answers storefront queries against a per-request catalog snapshot.
type Service struct {
	source      Source
	readTimeout time.Duration
}

// NewService creates a Service. A zero readTimeout leaves the caller's deadline untouched.
func NewService(source Source, readTimeout time.Duration) *Service {
	return &Service{
		source:      source,
		readTimeout: readTimeout,
	}
}

func (s *Service) snapshot(ctx context.Context) (*domain.Catalog, error) {
	if s.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
	}

	c, err := s.source.Load(ctx)
	if err != nil {
		return nil, domain.CatalogUnavailable(errors.Wrap(err, "load catalog"))
	}
	if c == nil {
		return nil, domain.CatalogUnavailable(errors.New("catalog source returned no snapshot"))
	}
	return c, nil
}

// Ping loads a snapshot and discards it.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.snapshot(ctx)
	return err
}

// Categories lists every category in catalog order.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	c, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if c.Categories == nil {
		return []domain.Category{}, nil
	}
	return c.Categories, nil
}

// BrowseCategory parses the raw price bounds, loads a snapshot and filters the
// category's products. Price input is validated before the catalog is read.
func (s *Service) BrowseCategory(ctx context.Context, slug, rawMin, rawMax string) (*CategoryPage, error) {
	r, err := ParsePriceRange(rawMin, rawMax)
	if err != nil {
		return nil, err
	}

	c, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	category, products, err := FilterByCategory(c, slug, r)
	if err != nil {
		return nil, err
	}

	return &CategoryPage{
		Category:        category,
		Products:        products,
		AppliedMinPrice: FormatBound(r.Min),
		AppliedMaxPrice: FormatBound(r.Max),
		Empty:           len(products) == 0,
	}, nil
}

// Product returns the product with the given textual id.
func (s *Service) Product(ctx context.Context, rawID string) (*ProductPage, error) {
	c, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	product, err := FindProduct(c, rawID)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Product:  product,
		Category: FindCategoryByID(c, product.CategoryID),
	}, nil
}
