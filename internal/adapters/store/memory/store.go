// Package memory provides an in-process quote store.
// It is the default store for local development and the store used by tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// record is a stored quote plus its insertion sequence, the listing tie-breaker.
type record struct {
	quote domain.Quote
	seq   uint64
}

// Store keeps quotes in memory behind an RWMutex.
type Store struct {
	mu      sync.RWMutex
	records []*record
	byID    map[string]*record
	seq     uint64
	newID   func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mainly for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		byID:  make(map[string]*record),
		newID: func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Find returns matching quotes newest first.
func (s *Store) Find(ctx context.Context, filter domain.QuoteFilter, skip, limit int) ([]*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := s.match(filter)
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *record) int {
		if c := b.quote.CreatedAt.Compare(a.quote.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.seq, a.seq)
	})

	if skip >= len(matched) {
		return []*domain.Quote{}, nil
	}

	matched = matched[max(skip, 0):]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	quotes := make([]*domain.Quote, 0, len(matched))
	for _, r := range matched {
		quotes = append(quotes, clone(&r.quote))
	}

	return quotes, nil
}

// Count returns the number of matching quotes.
func (s *Store) Count(ctx context.Context, filter domain.QuoteFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.match(filter))), nil
}

// GetByID returns the quote with the given ID, active or not.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return clone(&r.quote), nil
}

// Insert stores a copy of q and assigns q.ID.
func (s *Store) Insert(ctx context.Context, q *domain.Quote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if _, exists := s.byID[id]; exists {
		return domain.NewConflictErrorWithDetails("quote", "duplicate id", id)
	}

	q.ID = id
	s.seq++

	r := &record{quote: *clone(q), seq: s.seq}
	s.records = append(s.records, r)
	s.byID[id] = r

	return nil
}

// CountByCategory groups active quotes by category, largest first, ties by name.
func (s *Store) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	counts := make(map[domain.Category]int64)
	for _, r := range s.records {
		if r.quote.IsActive {
			counts[r.quote.Category]++
		}
	}
	s.mu.RUnlock()

	result := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, domain.CategoryCount{Category: category, Count: count})
	}

	slices.SortFunc(result, func(a, b domain.CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return result, nil
}

// ValidID accepts UUIDs, the only identifiers this store issues by default.
// A custom ID generator disables the check.
func (s *Store) ValidID(id string) bool {
	if id == "" {
		return false
	}

	if _, err := uuid.Parse(id); err == nil {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, known := s.byID[id]

	return known
}

// DeleteAll removes every quote.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.records))
	s.records = nil
	s.byID = make(map[string]*record)

	return n, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "memory-store"
}

// Check implements ports.HealthChecker. The memory store is healthy while the
// caller's context is.
func (s *Store) Check(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close(context.Context) error {
	return nil
}

// match returns the records satisfying filter, in insertion order.
// Must be called with the lock held.
func (s *Store) match(filter domain.QuoteFilter) []*record {
	author := strings.ToLower(filter.Author)

	matched := make([]*record, 0, len(s.records))
	for _, r := range s.records {
		if filter.ActiveOnly && !r.quote.IsActive {
			continue
		}

		if filter.Category != "" && r.quote.Category != filter.Category {
			continue
		}

		if author != "" && !strings.Contains(strings.ToLower(r.quote.Author), author) {
			continue
		}

		matched = append(matched, r)
	}

	return matched
}

// clone copies q so callers never share the stored tag slice.
func clone(q *domain.Quote) *domain.Quote {
	c := *q
	c.Tags = slices.Clone(q.Tags)

	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c
}
