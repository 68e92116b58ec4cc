package domain

// Category represents a browsable product category.
// Slug is the case-insensitive key used in category URLs.
type Category struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Product represents a product in the catalog.
// Price is expressed in minor units (cents).
type Product struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	ImgSrc      string `json:"imgSrc,omitempty"`
}

// Catalog is a read-only snapshot of the catalog document, loaded once per request.
// Ordering of both slices is the ordering of the source and is preserved by every filter.
type Catalog struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// Bound is an optional price bound in minor units. The zero value means unbounded.
type Bound struct {
	Cents int64
	Valid bool
}

// At returns a bound fixed at the given amount of cents.
func At(cents int64) Bound {
	return Bound{Cents: cents, Valid: true}
}

// PriceRange is an inclusive price range. An invalid Min acts as negative
// infinity and an invalid Max as positive infinity.
type PriceRange struct {
	Min Bound
	Max Bound
}

// Unbounded reports whether neither side of the range is set.
func (r PriceRange) Unbounded() bool {
	return !r.Min.Valid && !r.Max.Valid
}

// Inverted reports whether both bounds are set and Min exceeds Max.
func (r PriceRange) Inverted() bool {
	return r.Min.Valid && r.Max.Valid && r.Min.Cents > r.Max.Cents
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price int64) bool {
	if r.Min.Valid && price < r.Min.Cents {
		return false
	}
	if r.Max.Valid && price > r.Max.Cents {
		return false
	}
	return true
}
