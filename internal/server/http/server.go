// Package http exposes the REST surface over gin: the auth endpoints, the
// user-owned media endpoints, the public feedback endpoints, and the
// admin-only management endpoints.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/logging"
	"github.com/nikonik/mediavault/internal/server/admin"
	"github.com/nikonik/mediavault/internal/server/auth"
	"github.com/nikonik/mediavault/internal/server/feedback"
	"github.com/nikonik/mediavault/internal/server/media"
	"github.com/nikonik/mediavault/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	tokens   *auth.TokenManager
	users    *users.Service
	media    *media.Service
	feedback *feedback.Service
	admin    *admin.Service
}

func NewServer(
	address string,
	logger logging.Logger,
	tokens *auth.TokenManager,
	usersSvc *users.Service,
	mediaSvc *media.Service,
	feedbackSvc *feedback.Service,
	adminSvc *admin.Service,
) *Server {
	return &Server{
		address:  address,
		logger:   logger,
		tokens:   tokens,
		users:    usersSvc,
		media:    mediaSvc,
		feedback: feedbackSvc,
		admin:    adminSvc,
	}
}

// Router builds the gin engine with all routes mounted. Split out from Run
// so tests can drive it with httptest directly.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/me", s.requireAuth(), s.handleProfile)
	}

	mediaGroup := api.Group("/media", s.requireAuth())
	{
		mediaGroup.POST("", s.handleUploadMedia)
		mediaGroup.GET("", s.handleListMedia)
		mediaGroup.PATCH("/:id", s.handleRenameMedia)
		mediaGroup.DELETE("/:id", s.handleDeleteMedia)
		mediaGroup.GET("/:id/download", s.handleDownloadMedia)
	}

	api.POST("/contact", s.handleSubmitContact)
	api.POST("/ratings", s.handleSubmitRating)

	adminGroup := api.Group("/admin", s.requireAuth(), s.requireRole(common.RoleAdmin))
	{
		adminGroup.GET("/stats", s.handleAdminStats)
		adminGroup.GET("/users", s.handleAdminListUsers)
		adminGroup.DELETE("/users/:id", s.handleAdminDeleteUser)
		adminGroup.GET("/media", s.handleAdminListMedia)
		adminGroup.GET("/contacts", s.handleAdminListContacts)
		adminGroup.DELETE("/contacts/:id", s.handleAdminDeleteContact)
		adminGroup.GET("/ratings", s.handleAdminListRatings)
		adminGroup.DELETE("/ratings/:id", s.handleAdminDeleteRating)
	}

	return engine
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
