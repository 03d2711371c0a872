package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

const defaultWorkers = 4

// Store is what the seeder needs from a quote store.
type Store interface {
	ports.QuoteRepository
	ports.QuoteSeeder
}

// Config contains the seeder's dependencies. Store and Validator are required.
type Config struct {
	Store           Store
	Validator       *app.QuoteValidator
	DefaultCategory domain.Category
	Workers         int
	Logger          *slog.Logger
	Now             func() time.Time
}

// Report summarizes one seeding run.
type Report struct {
	Deleted    int64
	Inserted   int
	Categories []domain.CategoryCount
}

// Seeder writes a data set into a store.
type Seeder struct {
	store           Store
	validator       *app.QuoteValidator
	defaultCategory domain.Category
	workers         int
	logger          *slog.Logger
	now             func() time.Time
}

// NewSeeder creates a seeder. It panics if Store or Validator is missing.
func NewSeeder(cfg Config) *Seeder {
	if cfg.Store == nil || cfg.Validator == nil {
		panic("seed: NewSeeder requires a Store and a Validator")
	}

	s := &Seeder{
		store:           cfg.Store,
		validator:       cfg.Validator,
		defaultCategory: cfg.DefaultCategory,
		workers:         cfg.Workers,
		logger:          cfg.Logger,
		now:             cfg.Now,
	}

	if s.defaultCategory == "" {
		s.defaultCategory = domain.DefaultCategory
	}

	if s.workers < 1 {
		s.workers = defaultWorkers
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// Run validates every candidate, optionally empties the store, inserts the
// data set and reports the resulting per-category counts. Nothing is written
// if any candidate is invalid.
//
// Each record is stamped one millisecond after the previous one, so listings
// show the data set in reverse file order regardless of insert order.
func (s *Seeder) Run(ctx context.Context, candidates []domain.NewQuote, reset bool) (*Report, error) {
	quotes, err := s.build(candidates)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	if reset {
		deleted, err := s.store.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("clearing quotes: %w", err)
		}

		report.Deleted = deleted
		s.logger.InfoContext(ctx, "cleared existing quotes", slog.Int64("deleted", deleted))
	}

	var inserted atomic.Int64

	err = app.FanOut(ctx, s.workers, quotes, func(ctx context.Context, q *domain.Quote) error {
		if err := s.store.Insert(ctx, q); err != nil {
			return fmt.Errorf("inserting quote by %s: %w", q.Author, err)
		}

		inserted.Add(1)

		return nil
	})

	report.Inserted = int(inserted.Load())

	if err != nil {
		return report, err
	}

	s.logger.InfoContext(ctx, "inserted quotes",
		slog.Int("inserted", report.Inserted),
		slog.Int("workers", s.workers),
	)

	report.Categories, err = s.store.CountByCategory(ctx)
	if err != nil {
		return report, fmt.Errorf("counting quotes by category: %w", err)
	}

	return report, nil
}

// build validates and stamps every candidate.
func (s *Seeder) build(candidates []domain.NewQuote) ([]*domain.Quote, error) {
	if len(candidates) == 0 {
		return nil, ErrEmpty
	}

	base := s.now().UTC().Truncate(time.Millisecond)
	quotes := make([]*domain.Quote, 0, len(candidates))

	for i, candidate := range candidates {
		normalized := s.validator.Normalize(candidate)

		if err := s.validator.Validate(normalized); err != nil {
			return nil, fmt.Errorf("seed quote %d: %w", i+1, err)
		}

		category := normalized.Category
		if category == "" {
			category = s.defaultCategory
		}

		created := base.Add(time.Duration(i) * time.Millisecond)

		quotes = append(quotes, &domain.Quote{
			Text:      normalized.Text,
			Author:    normalized.Author,
			Category:  category,
			Tags:      normalized.Tags,
			IsActive:  true,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}

	return quotes, nil
}
