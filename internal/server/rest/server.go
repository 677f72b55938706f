// Package rest exposes the HTTP API: card create/update, label CRUD, user
// profile updates. Handlers translate wire shapes into service calls and map
// sentinel errors onto status codes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quanle-dev/taskboard/internal/logging"
	"github.com/quanle-dev/taskboard/internal/server/config"
	"github.com/quanle-dev/taskboard/internal/server/services"
)

type HTTPServer struct {
	address        string
	logger         logging.Logger
	cards          *services.CardService
	labels         *services.LabelService
	users          *services.UserService
	jwtSecret      []byte
	maxUploadBytes int64
}

func NewHTTPServer(cfg *config.Config, l logging.Logger,
	cards *services.CardService, labels *services.LabelService, users *services.UserService) *HTTPServer {
	return &HTTPServer{
		address:        cfg.EndpointAddrHTTP,
		logger:         l.With("module", "http_server"),
		cards:          cards,
		labels:         labels,
		users:          users,
		jwtSecret:      []byte(cfg.SecretKey),
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

func (s *HTTPServer) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestLogger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1", s.bearerAuth())
	v1.POST("/cards", s.createCard)
	v1.PUT("/cards/:id", s.updateCard)
	v1.POST("/labels", s.createLabel)
	v1.GET("/labels/board/:boardId", s.listLabels)
	v1.PUT("/labels/:id", s.updateLabel)
	v1.DELETE("/labels/:id", s.deleteLabel)
	v1.PUT("/users/profile", s.updateProfile)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
