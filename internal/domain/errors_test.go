package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindMatching(t *testing.T) {
	err := fmt.Errorf("handler: %w", CategoryNotFound("mugs"))

	assert.True(t, errors.Is(err, ErrCategoryNotFound))
	assert.False(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, "CategoryNotFound", KindName(err))
	assert.Equal(t, `category "mugs" does not exist`, Message(err, "fallback"))
}

func TestError_CauseStaysOutOfMessage(t *testing.T) {
	cause := errors.New("open data/data.json: no such file or directory")
	err := CatalogUnavailable(cause)

	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
	assert.Equal(t, "the catalog is temporarily unavailable", Message(err, ""))
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestKindName_Unknown(t *testing.T) {
	assert.Equal(t, "Internal", KindName(errors.New("boom")))
	assert.Equal(t, "InvalidRange", KindName(ErrInvalidRange))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}

func TestPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		r        PriceRange
		price    int64
		contains bool
	}{
		{"unbounded", PriceRange{}, 0, true},
		{"at min", PriceRange{Min: At(500)}, 500, true},
		{"below min", PriceRange{Min: At(500)}, 499, false},
		{"at max", PriceRange{Max: At(1800)}, 1800, true},
		{"above max", PriceRange{Max: At(1800)}, 1801, false},
		{"inside", PriceRange{Min: At(600), Max: At(1500)}, 1200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, tt.r.Contains(tt.price))
		})
	}

	assert.True(t, PriceRange{}.Unbounded())
	assert.True(t, PriceRange{Min: At(2000), Max: At(1000)}.Inverted())
	assert.False(t, PriceRange{Min: At(1000), Max: At(1000)}.Inverted())
	assert.False(t, PriceRange{Min: At(2000)}.Inverted())
}
