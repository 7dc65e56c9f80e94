package domain

import "time"

type (
	Product struct {
		ProductID   string
		Name        string
		Description string
		Price       float64
		Category    string
		ImageURL    string
		Tags        []string
		InStock     bool
		CreatedAt   time.Time
	}

	// ProductInput carries caller-provided fields for product creation.
	// Description may be empty, in that case it is generated.
	ProductInput struct {
		Name        string
		Description string
		Price       float64
		Category    string
		ImageURL    string
		Tags        []string
	}
)

// ProductQuery describes a catalog selection built by the query composer.
//
// Terms are matched case-insensitively as substrings of product name and
// description. TagTerms are lower-cased and tested for membership in the
// product tags. Category, when set, is an additional exact-match constraint.
type ProductQuery struct {
	Terms    []string
	TagTerms []string
	Category string
	Limit    int
}

// SearchParams carries a search request. UserID is optional and only
// attributes the emitted client event.
type SearchParams struct {
	Query    string
	Category string
	Limit    int
	UserID   string
}

// Recommendation holds the flattened product list together with the raw
// category list the products were selected from.
type Recommendation struct {
	Products   []Product
	Categories []string
}
