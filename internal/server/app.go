// Package server assembles the MediaVault backend: storage, blob store,
// services, and the REST endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikonik/mediavault/internal/logging"
	"github.com/nikonik/mediavault/internal/server/admin"
	"github.com/nikonik/mediavault/internal/server/auth"
	"github.com/nikonik/mediavault/internal/server/blobstore"
	"github.com/nikonik/mediavault/internal/server/config"
	"github.com/nikonik/mediavault/internal/server/feedback"
	serverhttp "github.com/nikonik/mediavault/internal/server/http"
	"github.com/nikonik/mediavault/internal/server/media"
	"github.com/nikonik/mediavault/internal/server/repositories/repomanager"
	"github.com/nikonik/mediavault/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *serverhttp.Server
}

// NewApp wires all components together. Migrations run as part of
// repository manager construction, so a returned App is ready to serve.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogJSONLogger(os.Stdout, slog.LevelInfo)

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing repositories: %w", err)
	}

	blobs, err := blobstore.NewS3Store(ctx, cfg)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("error initializing blob store: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.SecretKey,
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)

	usersSvc := users.NewService(repos.Users(), tokens, cfg)
	mediaSvc := media.NewService(repos.Media(), blobs)
	feedbackSvc := feedback.NewService(repos.Contacts(), repos.Ratings())
	adminSvc := admin.NewService(repos.Users(), repos.Media(), repos.Contacts(), repos.Ratings(), repos, blobs)

	httpServer := serverhttp.NewServer(cfg.EndpointAddrHTTP, logger, tokens,
		usersSvc, mediaSvc, feedbackSvc, adminSvc)

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		httpServer: httpServer,
	}, nil
}

// Run serves until the context is canceled or a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := a.repos.Close(); err != nil {
			a.logger.Error(ctx, "error closing repositories", "error", err.Error())
		}
	}()

	return a.httpServer.Run(ctx)
}
