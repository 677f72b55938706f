package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quanle-dev/taskboard/internal/server/services"
)

func (s *HTTPServer) createLabel(c *gin.Context) {
	var req services.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	label, err := s.labels.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

func (s *HTTPServer) listLabels(c *gin.Context) {
	labels, err := s.labels.ListForBoard(c.Request.Context(), currentUserID(c), c.Param("boardId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (s *HTTPServer) updateLabel(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	label, err := s.labels.Update(c.Request.Context(), currentUserID(c), c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (s *HTTPServer) deleteLabel(c *gin.Context) {
	if err := s.labels.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
