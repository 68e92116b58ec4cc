package catalog

import (
	"strconv"
	"strings"

	"storefront-service/internal/domain"
)

// FindCategory returns the category whose slug matches case-insensitively.
func FindCategory(c *domain.Catalog, slug string) (*domain.Category, error) {
	for i := range c.Categories {
		if strings.EqualFold(c.Categories[i].Slug, slug) {
			return &c.Categories[i], nil
		}
	}
	return nil, domain.CategoryNotFound(slug)
}

// FindCategoryByID returns the category with the given id, or nil.
func FindCategoryByID(c *domain.Catalog, id int64) *domain.Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// FindProduct looks a product up by its textual id. Ids that are not base-10
// integers cannot match any product and report ErrProductNotFound. Surrounding
// whitespace is not trimmed, so " 10" does not match product 10.
func FindProduct(c *domain.Catalog, rawID string) (*domain.Product, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, domain.ProductNotFound(rawID)
	}
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], nil
		}
	}
	return nil, domain.ProductNotFound(rawID)
}

// FilterByCategory resolves slug and returns the category's products whose
// price lies within r, in catalog order. An empty result is not an error.
func FilterByCategory(c *domain.Catalog, slug string, r domain.PriceRange) (*domain.Category, []domain.Product, error) {
	category, err := FindCategory(c, slug)
	if err != nil {
		return nil, nil, err
	}
	if r.Inverted() {
		return nil, nil, domain.InvalidRange()
	}

	products := make([]domain.Product, 0)
	for _, p := range c.Products {
		if p.CategoryID == category.ID && r.Contains(p.Price) {
			products = append(products, p)
		}
	}
	return category, products, nil
}
