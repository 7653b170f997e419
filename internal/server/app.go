// Package server initializes and runs the application gateway: it wires the
// repositories, services and HTTP routes, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gestorapp/gestor/internal/genai"
	"github.com/gestorapp/gestor/internal/logging"
	"github.com/gestorapp/gestor/internal/server/config"
	"github.com/gestorapp/gestor/internal/server/httpapi"
	"github.com/gestorapp/gestor/internal/server/repositories/repomanager"
	"github.com/gestorapp/gestor/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	generator := genai.NewWithBaseURL(cfg.GenAIAPIKey, cfg.GenAIBaseURL)
	fileService := services.NewFileService(cfg)

	deps := httpapi.Deps{
		Users:   services.NewUserService(rm.Users(), rm.RefreshTokens(), cfg),
		Clients: services.NewClientService(rm.Clients(), rm.Conn()),
		Tasks:   services.NewTaskService(rm.Tasks()),
		Diary:   services.NewDiaryService(rm.Diary()),
		Rataria: services.NewRatariaService(rm.Rataria()),
		Access:  services.NewAccessService(rm.Access(), rm.Conn()),
		Chat:    services.NewChatService(rm.Chat(), generator, fileService),
		Files:   fileService,
		Logger:  logger,
	}

	return &App{
		config:      cfg,
		logger:      logger,
		repomanager: rm,
		handler:     httpapi.NewHandler(deps),
	}, nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return app.repomanager.Close()
	})

	return g.Wait()
}
