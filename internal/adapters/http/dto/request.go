package dto

import "github.com/jsamuelsen/quotes-service/internal/domain"

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	Text     string   `json:"text"`
	Author   string   `json:"author"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ToNewQuote converts the request to a domain candidate.
func (r *CreateQuoteRequest) ToNewQuote() domain.NewQuote {
	return domain.NewQuote{
		Text:     r.Text,
		Author:   r.Author,
		Category: domain.Category(r.Category),
		Tags:     r.Tags,
	}
}

// NewCreateQuoteRequest builds a request body from a domain candidate.
func NewCreateQuoteRequest(q domain.NewQuote) CreateQuoteRequest {
	return CreateQuoteRequest{
		Text:     q.Text,
		Author:   q.Author,
		Category: string(q.Category),
		Tags:     q.Tags,
	}
}
