// Package server initializes and runs the taskboard server: configuration,
// logging, database and migrations, services, the HTTP endpoint, and
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/quanle-dev/taskboard/internal/logging"
	"github.com/quanle-dev/taskboard/internal/server/config"
	"github.com/quanle-dev/taskboard/internal/server/repositories/repomanager"
	"github.com/quanle-dev/taskboard/internal/server/rest"
	"github.com/quanle-dev/taskboard/internal/server/services"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *rest.HTTPServer
}

// newLogger picks the logging backend from config: structured JSON via zap,
// text via slog.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if cfg.LogFormat == "json" {
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return logging.NewZapLogger(zl), nil
	}
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))), nil
}

func NewApp(cfg *config.Config) (*App, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	storage := services.NewS3Provider(cfg)
	cardService := services.NewCardService(db, m, storage)
	labelService := services.NewLabelService(db, m)
	userService := services.NewUserService(db, m)

	httpServer := rest.NewHTTPServer(cfg, logger, cardService, labelService, userService)

	return &App{config: cfg, logger: logger, db: db, http: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
