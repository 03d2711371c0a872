// Package domain contains core business entities and rules.
package domain

import "time"

// Category classifies a quote. The set of valid categories is configuration,
// the constants below are the built-in defaults.
type Category string

const (
	CategoryMotivation  Category = "motivation"
	CategoryInspiration Category = "inspiration"
	CategoryWisdom      Category = "wisdom"
	CategoryLife        Category = "life"
	CategorySuccess     Category = "success"
)

// DefaultCategory is assigned when a new quote omits its category.
const DefaultCategory = CategoryInspiration

// DefaultCategories returns the built-in category enumeration in display order.
func DefaultCategories() []Category {
	return []Category{
		CategoryMotivation,
		CategoryInspiration,
		CategoryWisdom,
		CategoryLife,
		CategorySuccess,
	}
}

// Quote represents a stored quotation.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is assigned by the store on insert and never changes.
	ID string

	// Text is the quotation itself, trimmed.
	Text string

	// Author is who said or wrote the quote, trimmed.
	Author string

	// Category is always one of the configured categories.
	Category Category

	// Tags are free-form labels, in the order they were given.
	Tags []string

	// IsActive hides the quote from list, random and category counts when false.
	IsActive bool

	// CreatedAt is the listing sort key (newest first).
	CreatedAt time.Time

	// UpdatedAt equals CreatedAt; no operation modifies a stored quote.
	UpdatedAt time.Time
}

// NewQuote is a candidate quote as submitted by a caller, before validation
// and before the system-assigned fields exist.
type NewQuote struct {
	Text     string
	Author   string
	Category Category
	Tags     []string
}

// QuoteFilter restricts which quotes a query sees.
type QuoteFilter struct {
	// Category, when non-empty, requires an exact category match.
	Category Category

	// Author, when non-empty, requires a case-insensitive substring match.
	Author string

	// ActiveOnly excludes quotes with IsActive == false.
	ActiveOnly bool
}

// CategoryCount is the number of active quotes in one category.
type CategoryCount struct {
	Category Category
	Count    int64
}

// Pagination describes where a page sits within the full result set.
type Pagination struct {
	Page       int
	Limit      int
	TotalItems int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// QuotePage is one page of a filtered, newest-first quote listing.
type QuotePage struct {
	Quotes     []*Quote
	Pagination Pagination
}

// NewPagination computes page metadata for a result set of total items.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
