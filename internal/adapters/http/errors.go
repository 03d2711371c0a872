package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
)

// routeNotFound answers requests that match no route.
func routeNotFound(c *gin.Context) {
	dto.RespondWithErrorCode(c, dto.ErrorCodeRouteNotFound, "Route "+c.Request.URL.Path+" not found")
}

// methodNotAllowed answers requests whose path exists for other methods.
func methodNotAllowed(c *gin.Context) {
	dto.RespondWithErrorCode(c, dto.ErrorCodeMethodNotAllowed,
		"Method "+c.Request.Method+" not allowed on "+c.Request.URL.Path)
}
