package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/app"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	if service == nil {
		panic("quote handler requires a quote service")
	}

	return &QuoteHandler{
		service: service,
	}
}

// ListQuotes handles GET /quotes
// Returns one page of active quotes, newest first.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param category query string false "Exact category"
// @Param author query string false "Case-insensitive author substring"
// @Success 200 {object} dto.Response{data=dto.QuoteListData}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query dto.ListQuotesQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), query.Params())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromQuotePage(page)))
}

// GetRandomQuote handles GET /quotes/random
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Param category query string false "Exact category"
// @Success 200 {object} dto.Response{data=dto.QuoteData}
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	var query dto.RandomQuoteQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.Random(c.Request.Context(), query.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.QuoteData{Quote: dto.FromQuote(quote)}))
}

// GetCategories handles GET /quotes/categories
// Returns active quote counts per category, largest first.
//
// @Summary List categories with counts
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.Response{data=dto.CategoriesData}
// @Failure 500 {object} dto.ErrorResponse
// @Router /quotes/categories [get]
func (h *QuoteHandler) GetCategories(c *gin.Context) {
	counts, err := h.service.Categories(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.FromCategoryCounts(counts)))
}

// GetQuoteByID handles GET /quotes/:id
// Inactive quotes are returned as well.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.Response{data=dto.QuoteData}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	quote, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.QuoteData{Quote: dto.FromQuote(quote)}))
}

// CreateQuote handles POST /quotes
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote to create"
// @Success 201 {object} dto.Response{data=dto.QuoteData}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.Create(c.Request.Context(), req.ToNewQuote())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OKWithMessage(dto.QuoteData{Quote: dto.FromQuote(quote)}, dto.MessageCreated))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// Static segments are registered before the :id wildcard.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/categories", h.GetCategories)
	quotes.GET("/:id", h.GetQuoteByID)
}
