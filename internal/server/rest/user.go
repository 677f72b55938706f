package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quanle-dev/taskboard/internal/server/services"
)

func (s *HTTPServer) updateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
