package dto

import (
	"strconv"
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// ListQuotesQuery holds the raw list query parameters.
// Page and limit stay strings so that malformed values fall back to the
// service defaults instead of failing the request.
type ListQuotesQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Category string `form:"category" validate:"omitempty,max=50"`
	Author   string `form:"author"   validate:"omitempty,max=100"`
}

// RandomQuoteQuery holds the random quote query parameters.
type RandomQuoteQuery struct {
	Category string `form:"category" validate:"omitempty,max=50"`
}

// Params converts the query to service parameters.
func (q *ListQuotesQuery) Params() ports.ListQuotesParams {
	return ports.ListQuotesParams{
		Page:     parsePositive(q.Page),
		Limit:    parsePositive(q.Limit),
		Category: strings.TrimSpace(q.Category),
		Author:   strings.TrimSpace(q.Author),
	}
}

// PaginationResponse describes where a page sits in the full listing.
type PaginationResponse struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
	TotalItems int64 `json:"totalItems"`
	Limit      int   `json:"limit"`
}

// FromPagination converts domain paging metadata.
func FromPagination(p domain.Pagination) PaginationResponse {
	return PaginationResponse{
		Current:    p.Page,
		Total:      p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		TotalItems: p.TotalItems,
		Limit:      p.Limit,
	}
}

// ToPagination converts the wire form back to domain paging metadata.
func (p PaginationResponse) ToPagination() domain.Pagination {
	return domain.Pagination{
		Page:       p.Current,
		Limit:      p.Limit,
		TotalItems: p.TotalItems,
		TotalPages: p.Total,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

// parsePositive returns the integer value of s, or 0 when s is not a
// positive integer.
func parsePositive(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}

	return n
}
