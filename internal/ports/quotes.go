// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never driver or wire types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteRepository is the quote record store.
//
// Implementations order listings by CreatedAt descending and break ties
// deterministically, so that Find(skip=n, limit=1) addresses the same record
// as the n-th element of an unbounded Find under an unchanged store.
type QuoteRepository interface {
	// Find returns up to limit quotes matching filter, newest first, after
	// skipping skip matches. A limit of 0 means no limit.
	Find(ctx context.Context, filter domain.QuoteFilter, skip, limit int) ([]*domain.Quote, error)

	// Count returns the number of quotes matching filter.
	Count(ctx context.Context, filter domain.QuoteFilter) (int64, error)

	// GetByID returns the quote with the given identifier regardless of IsActive.
	// Returns domain.ErrNotFound if no such quote exists.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// Insert persists q and assigns q.ID.
	Insert(ctx context.Context, q *domain.Quote) error

	// CountByCategory groups active quotes by category, largest group first.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)

	// ValidID reports whether id is syntactically an identifier this store could have issued.
	ValidID(id string) bool
}

// QuoteSeeder is implemented by stores that support bulk resets for seeding.
type QuoteSeeder interface {
	// DeleteAll removes every quote and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// QuoteStore is a repository that can also be seeded, health checked and closed.
type QuoteStore interface {
	QuoteRepository
	QuoteSeeder
	HealthChecker

	// Close releases the store's connections.
	Close(ctx context.Context) error
}

// ListQuotesParams are the caller-facing list parameters, before defaults apply.
type ListQuotesParams struct {
	Page     int
	Limit    int
	Category string
	Author   string
}

// QuoteClient is the remote view of the quotes API, used by command-line tools.
type QuoteClient interface {
	ListQuotes(ctx context.Context, params ListQuotesParams) (*domain.QuotePage, error)
	GetRandomQuote(ctx context.Context, category string) (*domain.Quote, error)
	GetQuoteByID(ctx context.Context, id string) (*domain.Quote, error)
	CreateQuote(ctx context.Context, candidate domain.NewQuote) (*domain.Quote, error)
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)
}
