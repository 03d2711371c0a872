package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// QuoteClientConfig configures a QuoteClient.
type QuoteClientConfig struct {
	// Client is the HTTP client. Its BaseURL points at the API base path,
	// e.g. "http://localhost:8080/api".
	Client *clients.Client

	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient over the quotes HTTP API.
type QuoteClient struct {
	Remote

	logger *slog.Logger
}

var (
	_ ports.QuoteClient   = (*QuoteClient)(nil)
	_ ports.HealthChecker = (*QuoteClient)(nil)
)

// NewQuoteClient creates a quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		Remote: NewRemote(cfg.Client, cfg.Client.ServiceName()),
		logger: logger,
	}
}

// ListQuotes fetches one page of active quotes.
// Zero-valued params are left for the server to default.
func (c *QuoteClient) ListQuotes(ctx context.Context, params ports.ListQuotesParams) (*domain.QuotePage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	if params.Category != "" {
		query.Set("category", params.Category)
	}

	if params.Author != "" {
		query.Set("author", params.Author)
	}

	c.logger.Log(ctx, logging.LevelTrace, "listing quotes", slog.String("query", query.Encode()))

	body, err := c.fetch(ctx, "/quotes", query, call{operation: "list quotes"})
	if err != nil {
		return nil, err
	}

	data, _, err := DecodeEnvelope[dto.QuoteListData](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(data.Quotes, translateQuote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	return &domain.QuotePage{
		Quotes:     quotes,
		Pagination: data.Pagination.ToPagination(),
	}, nil
}

// GetRandomQuote fetches one random active quote, optionally from category.
func (c *QuoteClient) GetRandomQuote(ctx context.Context, category string) (*domain.Quote, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}

	c.logger.DebugContext(ctx, "fetching random quote", slog.String("category", category))

	body, err := c.fetch(ctx, "/quotes/random", query, call{operation: "get random quote"})
	if err != nil {
		return nil, err
	}

	return c.decodeQuote(ctx, body)
}

// GetQuoteByID fetches one quote by its identifier.
func (c *QuoteClient) GetQuoteByID(ctx context.Context, id string) (*domain.Quote, error) {
	if err := ValidateRequired(id, "id"); err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "fetching quote by ID", slog.String("quote_id", id))

	body, err := c.fetch(ctx, "/quotes/"+url.PathEscape(id), nil, call{operation: "get quote", entityID: id})
	if err != nil {
		return nil, err
	}

	return c.decodeQuote(ctx, body)
}

// CreateQuote submits a new quote. The server validates it.
func (c *QuoteClient) CreateQuote(ctx context.Context, candidate domain.NewQuote) (*domain.Quote, error) {
	c.logger.DebugContext(ctx, "creating quote", slog.String("author", candidate.Author))

	body, err := c.submit(ctx, "/quotes", dto.NewCreateQuoteRequest(candidate), call{operation: "create quote"})
	if err != nil {
		return nil, err
	}

	return c.decodeQuote(ctx, body)
}

// ListCategories fetches the active quote count per category.
func (c *QuoteClient) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	body, err := c.fetch(ctx, "/quotes/categories", nil, call{operation: "list categories"})
	if err != nil {
		return nil, err
	}

	data, _, err := DecodeEnvelope[dto.CategoriesData](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	counts := make([]domain.CategoryCount, 0, len(data.Categories))
	for _, cat := range data.Categories {
		counts = append(counts, domain.CategoryCount{Category: domain.Category(cat.Category), Count: cat.Count})
	}

	return counts, nil
}

func (c *QuoteClient) decodeQuote(ctx context.Context, body io.ReadCloser) (*domain.Quote, error) {
	data, _, err := DecodeEnvelope[dto.QuoteData](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	quote, err := translateQuote(data.Quote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated quote",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author))

	return quote, nil
}

// translateQuote rejects wire quotes without the fields every stored quote has.
func translateQuote(ext *dto.QuoteResponse) (*domain.Quote, error) {
	if ext == nil {
		return nil, domain.NewValidationError("quote", "missing from response")
	}

	if ext.ID == "" {
		return nil, domain.NewValidationError("_id", "missing from response")
	}

	if ext.Text == "" {
		return nil, domain.NewValidationError("text", "missing from response")
	}

	return ext.ToQuote(), nil
}

// RemoteHealth is the health report of the quotes API.
type RemoteHealth struct {
	Status ports.HealthStatus
	Checks map[string]*ports.CheckResult
	Uptime time.Duration
}

// healthResponse is the wire form of GET /health.
type healthResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks"`
	Uptime float64                       `json:"uptime"`
}

// Health fetches the API health report. A 503 carrying a report is not an error.
func (c *QuoteClient) Health(ctx context.Context) (*RemoteHealth, error) {
	resp, err := c.Client().Get(ctx, "/health", nil)
	if err != nil {
		return nil, MapHTTPError(nil, err, c.ServiceName(), "health check", "")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, c.ServiceName(), "health check", "")
	}

	report, err := DecodeResponse[healthResponse](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	if report.Status == "" {
		return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("health check returned status %d without a report", resp.StatusCode))
	}

	return &RemoteHealth{
		Status: ports.HealthStatus(report.Status),
		Checks: report.Checks,
		Uptime: time.Duration(report.Uptime * float64(time.Second)),
	}, nil
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker. The API must report itself healthy.
func (c *QuoteClient) Check(ctx context.Context) error {
	health, err := c.Health(ctx)
	if err != nil {
		return err
	}

	if health.Status != ports.HealthStatusHealthy {
		return domain.NewUnavailableError(c.ServiceName(), "reported "+string(health.Status))
	}

	return nil
}
