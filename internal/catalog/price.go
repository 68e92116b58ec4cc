package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront-service/internal/domain"
)

const (
	maxAmountLength = 64
	minExponent     = -64
	maxExponent     = 18
)

// maxCents is 2^63, the first float64 past the int64 range.
const maxCents = float64(math.MaxInt64)

// ParsePriceToCents converts a raw query value in major units into a bound in cents.
//
// An absent or blank value is unbounded. Anything else must be a finite,
// non-negative decimal number; it is converted to float64, scaled by 100 and
// rounded half away from zero. Malformed input yields a *domain.Error of
// kind ErrInvalidAmount, which is never treated as unbounded.
//
// Hex input and exponents outside [-64, 18] are rejected even though they
// denote finite numbers. So is text longer than 64 characters.
func ParsePriceToCents(field, raw string) (domain.Bound, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return domain.Bound{}, nil
	}
	if len(value) > maxAmountLength {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}

	// NewFromString rejects Infinity, NaN and non-numeric text.
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}
	if amount.IsZero() {
		return domain.At(0), nil
	}
	if exp := amount.Exponent(); exp < minExponent || exp > maxExponent {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}
	if amount.IsNegative() {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}

	// Cents follow binary floating point, so "1.005" is 100, not 101.
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}
	cents := math.Round(f * 100)
	if cents >= maxCents {
		return domain.Bound{}, domain.InvalidAmount(field, raw)
	}
	return domain.At(int64(cents)), nil
}

// ParsePriceRange parses both bounds of a price filter. The minimum is parsed
// first, so it is the one reported when both are malformed. The range itself
// is not checked for inversion here; FilterByCategory does that once the
// category is resolved.
func ParsePriceRange(rawMin, rawMax string) (domain.PriceRange, error) {
	lo, err := ParsePriceToCents("minPrice", rawMin)
	if err != nil {
		return domain.PriceRange{}, err
	}
	hi, err := ParsePriceToCents("maxPrice", rawMax)
	if err != nil {
		return domain.PriceRange{}, err
	}
	return domain.PriceRange{Min: lo, Max: hi}, nil
}

// FormatCents renders cents in major units with two decimals, e.g. 1200 -> "12.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatBound renders an applied bound for display; unbounded renders empty.
func FormatBound(b domain.Bound) string {
	if !b.Valid {
		return ""
	}
	return FormatCents(b.Cents)
}
