package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/mocks"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

const missingID = "0b6a2c1e-7e4f-4d38-8b71-5f2a9c3d4e10"

// quoteEnvelope is the decoded body of a single-quote response.
type quoteEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    dto.QuoteData `json:"data"`
}

type listEnvelope struct {
	Success bool              `json:"success"`
	Data    dto.QuoteListData `json:"data"`
}

type categoriesEnvelope struct {
	Success bool               `json:"success"`
	Data    dto.CategoriesData `json:"data"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupQuoteRouter creates a router serving the quote routes over a memory store.
func setupQuoteRouter(t *testing.T) (*gin.Engine, *app.QuoteService) {
	t.Helper()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: memory.New(),
		Logger:     discardLogger(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	})

	router := gin.New()
	NewQuoteHandler(service).RegisterQuoteRoutes(router.Group("/api"))

	return router, service
}

// setupMockRouter creates a router whose service is backed by a mock repository.
func setupMockRouter(t *testing.T, setupMock func(*mocks.MockQuoteRepository)) *gin.Engine {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	if setupMock != nil {
		setupMock(repo)
	}

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: repo,
		Logger:     discardLogger(),
	})

	router := gin.New()
	NewQuoteHandler(service).RegisterQuoteRoutes(router.Group("/api"))

	return router
}

func seedQuote(t *testing.T, service *app.QuoteService, text, author string, category domain.Category) *domain.Quote {
	t.Helper()

	q, err := service.Create(context.Background(), domain.NewQuote{Text: text, Author: author, Category: category})
	require.NoError(t, err)

	return q
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestNewQuoteHandler(t *testing.T) {
	_, service := setupQuoteRouter(t)

	require.NotNil(t, NewQuoteHandler(service))
	assert.Panics(t, func() { NewQuoteHandler(nil) })
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	router, service := setupQuoteRouter(t)

	seedQuote(t, service, "The first quote in the list.", "Ada Lovelace", domain.CategoryWisdom)
	seedQuote(t, service, "The second quote in the list.", "Alan Turing", domain.CategoryLife)
	last := seedQuote(t, service, "The third quote in the list.", "Grace Hopper", domain.CategoryWisdom)

	w := serve(router, http.MethodGet, "/api/quotes?limit=2", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Quotes, 2)
	assert.Equal(t, last.ID, resp.Data.Quotes[0].ID)
	assert.Equal(t, dto.PaginationResponse{
		Current:    1,
		Total:      2,
		HasNext:    true,
		HasPrev:    false,
		TotalItems: 3,
		Limit:      2,
	}, resp.Data.Pagination)
}

func TestQuoteHandler_ListQuotes_Filters(t *testing.T) {
	router, service := setupQuoteRouter(t)

	seedQuote(t, service, "Wisdom begins in wonder, always.", "Socrates", domain.CategoryWisdom)
	seedQuote(t, service, "Life is what happens meanwhile.", "John Lennon", domain.CategoryLife)

	tests := []struct {
		name      string
		target    string
		wantCount int
	}{
		{"category", "/api/quotes?category=wisdom", 1},
		{"author substring ignores case", "/api/quotes?author=lEnNoN", 1},
		{"no match", "/api/quotes?author=Plato", 0},
		{"malformed paging falls back", "/api/quotes?page=abc&limit=-1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp listEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Data.Quotes, tt.wantCount)
			assert.NotNil(t, resp.Data.Quotes)
		})
	}
}

func TestQuoteHandler_ListQuotes_InvalidCategory(t *testing.T) {
	router, _ := setupQuoteRouter(t)

	w := serve(router, http.MethodGet, "/api/quotes?category=unknown", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Code)
	assert.Equal(t, `"category" must be one of [motivation, inspiration, wisdom, life, success]`, resp.Message)
}

func TestQuoteHandler_ListQuotes_StoreError(t *testing.T) {
	router := setupMockRouter(t, func(m *mocks.MockQuoteRepository) {
		m.EXPECT().Find(mock.Anything, mock.Anything, 0, 10).Return(nil, errors.New("connection reset")).Maybe()
		m.EXPECT().Count(mock.Anything, mock.Anything).Return(0, errors.New("connection reset")).Maybe()
	})

	w := serve(router, http.MethodGet, "/api/quotes", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeInternal, resp.Code)
	assert.Equal(t, dto.MessageInternal, resp.Message)
}

func TestQuoteHandler_GetRandomQuote(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		router, _ := setupQuoteRouter(t)

		w := serve(router, http.MethodGet, "/api/quotes/random", "")

		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeError(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "No quotes found", resp.Message)
	})

	t.Run("within category", func(t *testing.T) {
		router, service := setupQuoteRouter(t)

		seedQuote(t, service, "Success is not final, failure is not fatal.", "Winston Churchill", domain.CategorySuccess)
		want := seedQuote(t, service, "Do what you can, with what you have.", "Theodore Roosevelt", domain.CategoryMotivation)

		w := serve(router, http.MethodGet, "/api/quotes/random?category=motivation", "")

		require.Equal(t, http.StatusOK, w.Code)

		var resp quoteEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, want.ID, resp.Data.Quote.ID)
	})

	t.Run("invalid category", func(t *testing.T) {
		router, _ := setupQuoteRouter(t)

		w := serve(router, http.MethodGet, "/api/quotes/random?category=jokes", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuoteHandler_GetCategories(t *testing.T) {
	router, service := setupQuoteRouter(t)

	seedQuote(t, service, "Motivation gets you going.", "Jim Ryun", domain.CategoryMotivation)
	seedQuote(t, service, "Keep going, whatever happens.", "Anonymous", domain.CategoryMotivation)
	seedQuote(t, service, "Knowing yourself is wisdom.", "Aristotle", domain.CategoryWisdom)

	w := serve(router, http.MethodGet, "/api/quotes/categories", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp categoriesEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, []dto.CategoryCountResponse{
		{Category: "motivation", Count: 2},
		{Category: "wisdom", Count: 1},
	}, resp.Data.Categories)
}

func TestQuoteHandler_GetCategories_Empty(t *testing.T) {
	router, _ := setupQuoteRouter(t)

	w := serve(router, http.MethodGet, "/api/quotes/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"categories":[]}}`, w.Body.String())
}

func TestQuoteHandler_GetQuoteByID(t *testing.T) {
	router, service := setupQuoteRouter(t)

	stored := seedQuote(t, service, "Simplicity is the ultimate sophistication.", "Leonardo da Vinci", domain.CategoryWisdom)

	tests := []struct {
		name        string
		id          string
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "found",
			id:         stored.ID,
			wantStatus: http.StatusOK,
		},
		{
			name:        "malformed id",
			id:          "not-an-id",
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeInvalidID,
			wantMessage: "Invalid quote ID format",
		},
		{
			name:        "unknown id",
			id:          missingID,
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrorCodeNotFound,
			wantMessage: "Quote not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, "/api/quotes/"+tt.id, "")

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantCode == "" {
				var resp quoteEnvelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, stored.ID, resp.Data.Quote.ID)
				assert.Equal(t, stored.Text, resp.Data.Quote.Text)

				return
			}

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	router, _ := setupQuoteRouter(t)

	w := serve(router, http.MethodPost, "/api/quotes",
		`{"text":"  The best way out is always through.  ","author":"Robert Frost","tags":["grit"]}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var created quoteEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.True(t, created.Success)
	assert.Equal(t, "Quote created successfully", created.Message)
	assert.Equal(t, "The best way out is always through.", created.Data.Quote.Text)
	assert.Equal(t, "inspiration", created.Data.Quote.Category)
	assert.Equal(t, []string{"grit"}, created.Data.Quote.Tags)
	assert.True(t, created.Data.Quote.IsActive)
	assert.NotEmpty(t, created.Data.Quote.ID)

	w = serve(router, http.MethodGet, "/api/quotes/"+created.Data.Quote.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var fetched quoteEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.Quote, fetched.Data.Quote)
}

func TestQuoteHandler_CreateQuote_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "empty body",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidation,
			wantMessage: `"text" is required`,
		},
		{
			name:        "text too short",
			body:        `{"text":"too short","author":"Someone"}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidation,
			wantMessage: `"text" length must be at least 10 characters long`,
		},
		{
			name:        "unknown category",
			body:        `{"text":"A perfectly fine quote.","author":"Someone","category":"unknown"}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidation,
			wantMessage: `"category" must be one of [motivation, inspiration, wisdom, life, success]`,
		},
		{
			name:        "tags of wrong type",
			body:        `{"text":"A perfectly fine quote.","author":"Someone","tags":"one"}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeValidation,
			wantMessage: `"tags" must be an array`,
		},
		{
			name:        "malformed json",
			body:        `{"text":`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrorCodeBadRequest,
			wantMessage: "request body is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := setupQuoteRouter(t)

			w := serve(router, http.MethodPost, "/api/quotes", tt.body)

			require.Equal(t, tt.wantStatus, w.Code)

			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)

			page, err := service.List(context.Background(), ports.ListQuotesParams{})
			require.NoError(t, err)
			assert.Zero(t, page.Pagination.TotalItems, "rejected quote must not be stored")
		})
	}
}

func TestQuoteHandler_RegisterQuoteRoutes(t *testing.T) {
	router, _ := setupQuoteRouter(t)

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /api/quotes",
		"POST /api/quotes",
		"GET /api/quotes/random",
		"GET /api/quotes/categories",
		"GET /api/quotes/:id",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}
