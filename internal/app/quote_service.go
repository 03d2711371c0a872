// Package app contains application services that orchestrate use cases.
// It coordinates the domain and the quote store through ports and owns the
// query rules (paging defaults, category set) and the write rules.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// User-facing not found messages.
const (
	msgNoQuotes      = "No quotes found"
	msgQuoteNotFound = "Quote not found"
)

// QueryConfig holds the quote query rules.
type QueryConfig struct {
	DefaultPage     int
	DefaultLimit    int
	MaxLimit        int
	Categories      []domain.Category
	DefaultCategory domain.Category
}

// DefaultQueryConfig returns the stock paging rules and category set.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		DefaultPage:     1,
		DefaultLimit:    10,
		MaxLimit:        100,
		Categories:      domain.DefaultCategories(),
		DefaultCategory: domain.DefaultCategory,
	}
}

// QueryConfigFrom converts the quotes config section.
func QueryConfigFrom(cfg config.QuotesConfig) QueryConfig {
	categories := make([]domain.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categories = append(categories, domain.Category(c))
	}

	return QueryConfig{
		DefaultPage:     cfg.DefaultPage,
		DefaultLimit:    cfg.DefaultLimit,
		MaxLimit:        cfg.MaxLimit,
		Categories:      categories,
		DefaultCategory: domain.Category(cfg.DefaultCategory),
	}
}

// QuoteService orchestrates quote use cases over a QuoteRepository.
type QuoteService struct {
	repo      ports.QuoteRepository
	storeName string
	query     QueryConfig
	validator *QuoteValidator
	executor  *Executor
	metrics   *QuoteMetrics
	logger    *slog.Logger
	tracer    trace.Tracer
	randN     func(n int64) int64
	now       func() time.Time
}

// QuoteServiceConfig contains the dependencies of the quote service.
// Repository is required. Query defaults to DefaultQueryConfig, Rand to a
// uniform math/rand source and Now to time.Now.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Query      *QueryConfig
	Metrics    *QuoteMetrics
	Logger     *slog.Logger

	// Rand returns a uniform integer in [0, n).
	Rand func(n int64) int64
	Now  func() time.Time
}

// NewQuoteService creates a new quote service. It panics if no repository is given.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: NewQuoteService requires a Repository")
	}

	query := DefaultQueryConfig()
	if cfg.Query != nil {
		query = *cfg.Query
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	randN := cfg.Rand
	if randN == nil {
		randN = rand.Int64N
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	storeName := "unknown"
	if named, ok := cfg.Repository.(interface{ Name() string }); ok {
		storeName = named.Name()
	}

	return &QuoteService{
		repo:      cfg.Repository,
		storeName: storeName,
		query:     query,
		validator: NewQuoteValidator(query.Categories),
		executor:  NewExecutor(logger),
		metrics:   cfg.Metrics,
		logger:    logger,
		tracer:    telemetry.Tracer(),
		randN:     randN,
		now:       now,
	}
}

// Validator returns the write rules used by Create.
func (s *QuoteService) Validator() *QuoteValidator {
	return s.validator
}

// List returns one page of active quotes matching the category and author filters,
// newest first. Non-positive page or limit values fall back to the defaults and
// limits above MaxLimit are clamped.
func (s *QuoteService) List(ctx context.Context, params ports.ListQuotesParams) (page *domain.QuotePage, err error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.List")
	defer func() { s.finish(span, "list", err) }()

	filter, err := s.filter(params.Category, params.Author)
	if err != nil {
		return nil, err
	}

	pageNum, limit := s.paging(params.Page, params.Limit)
	skip, reachable := offset(pageNum, limit)

	span.SetAttributes(
		attribute.Int("quotes.page", pageNum),
		attribute.Int("quotes.limit", limit),
		attribute.String("quotes.category", string(filter.Category)),
	)

	quotes, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]*domain.Quote, error) {
			if !reachable {
				return []*domain.Quote{}, nil
			}

			defer s.metrics.observeStore(s.storeName, "find", time.Now())
			return s.repo.Find(ctx, filter, skip, limit)
		},
		func(ctx context.Context) (int64, error) {
			defer s.metrics.observeStore(s.storeName, "count", time.Now())
			return s.repo.Count(ctx, filter)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	if quotes == nil {
		quotes = []*domain.Quote{}
	}

	s.logger.DebugContext(ctx, "listed quotes",
		slog.Int("page", pageNum),
		slog.Int("limit", limit),
		slog.Int("returned", len(quotes)),
		slog.Int64("total", total),
	)

	return &domain.QuotePage{
		Quotes:     quotes,
		Pagination: domain.NewPagination(pageNum, limit, total),
	}, nil
}

// Random returns a uniformly chosen active quote, optionally within category.
func (s *QuoteService) Random(ctx context.Context, category string) (quote *domain.Quote, err error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.Random")
	defer func() { s.finish(span, "random", err) }()

	filter, err := s.filter(category, "")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	total, err := s.repo.Count(ctx, filter)
	s.metrics.observeStore(s.storeName, "count", start)

	if err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}

	if total == 0 {
		return nil, domain.NewNotFoundErrorWithMessage("quote", "", msgNoQuotes)
	}

	offset := s.randN(total)
	span.SetAttributes(attribute.Int64("quotes.total", total), attribute.Int64("quotes.offset", offset))

	start = time.Now()
	quotes, err := s.repo.Find(ctx, filter, int(offset), 1)
	s.metrics.observeStore(s.storeName, "find", start)

	if err != nil {
		return nil, fmt.Errorf("fetching random quote: %w", err)
	}

	// The record at offset can vanish between count and fetch.
	if len(quotes) == 0 {
		return nil, domain.NewNotFoundErrorWithMessage("quote", "", msgNoQuotes)
	}

	return quotes[0], nil
}

// GetByID returns the quote with the given identifier, active or not.
func (s *QuoteService) GetByID(ctx context.Context, id string) (quote *domain.Quote, err error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.GetByID", trace.WithAttributes(attribute.String("quote.id", id)))
	defer func() { s.finish(span, "get", err) }()

	if !s.repo.ValidID(id) {
		return nil, domain.NewInvalidIDError("quote", id)
	}

	start := time.Now()
	quote, err = s.repo.GetByID(ctx, id)
	s.metrics.observeStore(s.storeName, "get", start)

	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundErrorWithMessage("quote", id, msgQuoteNotFound)
		}

		return nil, fmt.Errorf("getting quote %s: %w", id, err)
	}

	return quote, nil
}

// Categories counts active quotes per category, largest first.
func (s *QuoteService) Categories(ctx context.Context) (counts []domain.CategoryCount, err error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.Categories")
	defer func() { s.finish(span, "categories", err) }()

	start := time.Now()
	counts, err = s.repo.CountByCategory(ctx)
	s.metrics.observeStore(s.storeName, "count_by_category", start)

	if err != nil {
		return nil, fmt.Errorf("counting quotes by category: %w", err)
	}

	if counts == nil {
		counts = []domain.CategoryCount{}
	}

	return counts, nil
}

// Create validates candidate, stores it as a new active quote and returns the
// stored record.
func (s *QuoteService) Create(ctx context.Context, candidate domain.NewQuote) (quote *domain.Quote, err error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.Create")
	defer func() { s.finish(span, "create", err) }()

	quote, err = Execute(ctx, s.executor, s.createOperation(), candidate)
	if err != nil {
		return nil, err
	}

	s.metrics.observeCreated(quote.Category)
	span.SetAttributes(attribute.String("quote.id", quote.ID))

	return quote, nil
}

func (s *QuoteService) createOperation() Operation[domain.NewQuote, *domain.Quote, *domain.Quote, *domain.Quote] {
	return Operation[domain.NewQuote, *domain.Quote, *domain.Quote, *domain.Quote]{
		Name: "create_quote",

		Validate: func(_ context.Context, candidate domain.NewQuote) error {
			return s.validator.Validate(s.validator.Normalize(candidate))
		},

		Perform: func(_ context.Context, candidate domain.NewQuote) (*domain.Quote, error) {
			normalized := s.validator.Normalize(candidate)

			category := normalized.Category
			if category == "" {
				category = s.query.DefaultCategory
			}

			now := s.now().UTC()

			return &domain.Quote{
				Text:      normalized.Text,
				Author:    normalized.Author,
				Category:  category,
				Tags:      normalized.Tags,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},

		Verify: func(_ context.Context, _ domain.NewQuote, built *domain.Quote) (*domain.Quote, error) {
			err := s.validator.Validate(domain.NewQuote{
				Text:     built.Text,
				Author:   built.Author,
				Category: built.Category,
				Tags:     built.Tags,
			})
			if err != nil {
				return nil, err
			}

			return built, nil
		},

		Archive: func(ctx context.Context, _ domain.NewQuote, verified *domain.Quote) error {
			defer s.metrics.observeStore(s.storeName, "insert", time.Now())
			return s.repo.Insert(ctx, verified)
		},

		Respond: func(_ context.Context, _ domain.NewQuote, verified *domain.Quote) (*domain.Quote, error) {
			return verified, nil
		},
	}
}

// filter builds the active-only store filter, rejecting unknown categories.
func (s *QuoteService) filter(category, author string) (domain.QuoteFilter, error) {
	if category != "" && !s.validator.ValidCategory(category) {
		return domain.QuoteFilter{}, s.validator.CategoryError(category)
	}

	return domain.QuoteFilter{
		Category:   domain.Category(category),
		Author:     author,
		ActiveOnly: true,
	}, nil
}

// offset is the number of records before page. ok is false when that number
// does not fit in an int; no store can hold that many, so the page is empty.
func offset(page, limit int) (skip int, ok bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}

	return (page - 1) * limit, true
}

// paging applies the defaults and the limit cap.
func (s *QuoteService) paging(page, limit int) (int, int) {
	if page <= 0 {
		page = s.query.DefaultPage
	}

	if limit <= 0 {
		limit = s.query.DefaultLimit
	}

	if s.query.MaxLimit > 0 && limit > s.query.MaxLimit {
		limit = s.query.MaxLimit
	}

	return max(page, 1), max(limit, 1)
}

func (s *QuoteService) finish(span trace.Span, operation string, err error) {
	s.metrics.observeOperation(operation, err)

	if err != nil && resultLabel(err) == resultError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
