package dto

import (
	"time"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// MessageCreated is returned alongside a newly created quote.
const MessageCreated = "Quote created successfully"

// Response is the success envelope for all API responses.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKWithMessage wraps data in a success envelope with a message.
func OKWithMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuoteData is the data payload for single-quote responses.
type QuoteData struct {
	Quote *QuoteResponse `json:"quote"`
}

// QuoteListData is the data payload for quote listings.
type QuoteListData struct {
	Quotes     []*QuoteResponse   `json:"quotes"`
	Pagination PaginationResponse `json:"pagination"`
}

// CategoryCountResponse is one category with its active quote count.
type CategoryCountResponse struct {
	Category string `json:"_id"`
	Count    int64  `json:"count"`
}

// CategoriesData is the data payload for the categories listing.
type CategoriesData struct {
	Categories []CategoryCountResponse `json:"categories"`
}

// FromQuote converts a domain quote to its wire form.
func FromQuote(q *domain.Quote) *QuoteResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	return &QuoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Category:  string(q.Category),
		Tags:      tags,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt.UTC(),
		UpdatedAt: q.UpdatedAt.UTC(),
	}
}

// FromQuotePage converts a page of quotes.
func FromQuotePage(page *domain.QuotePage) QuoteListData {
	quotes := make([]*QuoteResponse, 0, len(page.Quotes))
	for _, q := range page.Quotes {
		quotes = append(quotes, FromQuote(q))
	}

	return QuoteListData{
		Quotes:     quotes,
		Pagination: FromPagination(page.Pagination),
	}
}

// FromCategoryCounts converts category counts.
func FromCategoryCounts(counts []domain.CategoryCount) CategoriesData {
	out := make([]CategoryCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryCountResponse{Category: string(c.Category), Count: c.Count})
	}

	return CategoriesData{Categories: out}
}

// ToQuote converts the wire form back to a domain quote.
func (r *QuoteResponse) ToQuote() *domain.Quote {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Quote{
		ID:        r.ID,
		Text:      r.Text,
		Author:    r.Author,
		Category:  domain.Category(r.Category),
		Tags:      tags,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
