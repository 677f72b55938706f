package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quanle-dev/taskboard/internal/common"
)

// writeError maps sentinel errors onto status codes. Anything unrecognized
// is an upstream failure: logged with detail, surfaced as a bare 500.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed"})
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
