// Package storetest holds the behavioral contract every quote store must satisfy.
// Store packages run it from their own tests against a fresh, empty store.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// Factory returns an empty store. Cleanup is registered on t.
type Factory func(t *testing.T) ports.QuoteStore

// Run executes the contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("insert then get", func(t *testing.T) { testInsertGet(t, newStore(t)) })
	t.Run("get unknown id", func(t *testing.T) { testGetUnknown(t, newStore(t)) })
	t.Run("find order and paging", func(t *testing.T) { testFindPaging(t, newStore(t)) })
	t.Run("filters", func(t *testing.T) { testFilters(t, newStore(t)) })
	t.Run("count by category", func(t *testing.T) { testCountByCategory(t, newStore(t)) })
	t.Run("delete all", func(t *testing.T) { testDeleteAll(t, newStore(t)) })
	t.Run("health", func(t *testing.T) { testHealth(t, newStore(t)) })
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newQuote(author string, category domain.Category, active bool, at time.Duration) *domain.Quote {
	return &domain.Quote{
		Text:      "Contract quote attributed to " + author,
		Author:    author,
		Category:  category,
		Tags:      []string{"contract", string(category)},
		IsActive:  active,
		CreatedAt: epoch.Add(at),
		UpdatedAt: epoch.Add(at),
	}
}

func insert(t *testing.T, s ports.QuoteStore, quotes ...*domain.Quote) {
	t.Helper()

	for _, q := range quotes {
		require.NoError(t, s.Insert(context.Background(), q))
		require.NotEmpty(t, q.ID)
	}
}

func authors(quotes []*domain.Quote) []string {
	names := make([]string, 0, len(quotes))
	for _, q := range quotes {
		names = append(names, q.Author)
	}

	return names
}

func testInsertGet(t *testing.T, s ports.QuoteStore) {
	q := newQuote("Confucius", domain.CategoryWisdom, false, 0)
	insert(t, s, q)

	assert.True(t, s.ValidID(q.ID))

	got, err := s.GetByID(context.Background(), q.ID)
	require.NoError(t, err)

	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, q.Text, got.Text)
	assert.Equal(t, q.Author, got.Author)
	assert.Equal(t, q.Category, got.Category)
	assert.Equal(t, q.Tags, got.Tags)
	assert.False(t, got.IsActive)
	assert.True(t, q.CreatedAt.Equal(got.CreatedAt))
}

func testGetUnknown(t *testing.T, s ports.QuoteStore) {
	q := newQuote("Someone", domain.CategoryLife, true, 0)
	insert(t, s, q)

	_, err := s.DeleteAll(context.Background())
	require.NoError(t, err)

	_, err = s.GetByID(context.Background(), q.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func testFindPaging(t *testing.T, s ports.QuoteStore) {
	for i := range 5 {
		insert(t, s, newQuote(fmt.Sprintf("Author %d", i), domain.CategoryLife, true, time.Duration(i)*time.Hour))
	}

	filter := domain.QuoteFilter{ActiveOnly: true}

	all, err := s.Find(context.Background(), filter, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Author 4", "Author 3", "Author 2", "Author 1", "Author 0"}, authors(all))

	page, err := s.Find(context.Background(), filter, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Author 3", "Author 2"}, authors(page))

	for i := range all {
		single, err := s.Find(context.Background(), filter, i, 1)
		require.NoError(t, err)
		require.Len(t, single, 1)
		assert.Equal(t, all[i].ID, single[0].ID)
	}

	past, err := s.Find(context.Background(), filter, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func testFilters(t *testing.T, s ports.QuoteStore) {
	insert(t, s,
		newQuote("Maya Angelou", domain.CategoryInspiration, true, 0),
		newQuote("Albert Einstein", domain.CategoryWisdom, true, time.Hour),
		newQuote("Alan Watts", domain.CategoryWisdom, false, 2*time.Hour),
		newQuote("Walt Disney", domain.CategoryMotivation, true, 3*time.Hour),
	)

	tests := []struct {
		name     string
		filter   domain.QuoteFilter
		expected []string
	}{
		{"active only", domain.QuoteFilter{ActiveOnly: true}, []string{"Walt Disney", "Albert Einstein", "Maya Angelou"}},
		{"category", domain.QuoteFilter{ActiveOnly: true, Category: domain.CategoryWisdom}, []string{"Albert Einstein"}},
		{"author case-insensitive", domain.QuoteFilter{ActiveOnly: true, Author: "aL"}, []string{"Walt Disney", "Albert Einstein"}},
		{"author literal", domain.QuoteFilter{ActiveOnly: true, Author: "A%"}, []string{}},
		{"author literal regex", domain.QuoteFilter{ActiveOnly: true, Author: ".*"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(context.Background(), tt.filter, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, authors(got))

			n, err := s.Count(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.expected)), n)
		})
	}
}

func testCountByCategory(t *testing.T, s ports.QuoteStore) {
	empty, err := s.CountByCategory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)

	insert(t, s,
		newQuote("A", domain.CategorySuccess, true, 0),
		newQuote("B", domain.CategorySuccess, true, 0),
		newQuote("C", domain.CategoryLife, true, 0),
		newQuote("D", domain.CategoryInspiration, true, 0),
		newQuote("E", domain.CategoryWisdom, false, 0),
	)

	got, err := s.CountByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{
		{Category: domain.CategorySuccess, Count: 2},
		{Category: domain.CategoryInspiration, Count: 1},
		{Category: domain.CategoryLife, Count: 1},
	}, got)
}

func testDeleteAll(t *testing.T, s ports.QuoteStore) {
	insert(t, s,
		newQuote("A", domain.CategorySuccess, true, 0),
		newQuote("B", domain.CategoryLife, false, 0),
	)

	n, err := s.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := s.Count(context.Background(), domain.QuoteFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func testHealth(t *testing.T, s ports.QuoteStore) {
	assert.NotEmpty(t, s.Name())
	assert.NoError(t, s.Check(context.Background()))
}
