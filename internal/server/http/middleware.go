package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/server/auth"
)

// Context keys under which the authenticated identity is stored.
const (
	ctxUserIDKey = "userID"
	ctxRoleKey   = "role"
)

// requireAuth extracts the bearer access token, verifies it, and attaches
// the resolved identity to the request context. The request is aborted
// before any handler logic runs when the token is missing, malformed,
// expired, or of the wrong kind; the client always sees a generic 401
// while the precise failure is logged server-side.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" || !strings.HasPrefix(header, common.BearerPrefix) {
			s.logger.Warn(c.Request.Context(), "missing or malformed authorization header", "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(common.ErrorUnauthorized))
			return
		}

		token := strings.TrimPrefix(header, common.BearerPrefix)

		claims, err := s.tokens.VerifyKind(token, auth.KindAccess)
		if err != nil {
			// expired vs invalid vs wrong kind are distinguished in logs only
			s.logger.Warn(c.Request.Context(), "access token rejected", "reason", err.Error(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(common.ErrorUnauthorized))
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// requireRole gates a route on an exact role match. It assumes requireAuth
// already ran: an absent identity is a 401, a present identity with the
// wrong role is a 403.
func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := c.Get(ctxRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(common.ErrorUnauthorized))
			return
		}

		if current.(string) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody(common.ErrorForbidden))
			return
		}

		c.Next()
	}
}

func identity(c *gin.Context) (string, string) {
	return c.GetString(ctxUserIDKey), c.GetString(ctxRoleKey)
}

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// statusFromError maps service errors onto HTTP statuses. Unrecognized
// errors become a generic 500 so internals never leak to clients.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrWrongTokenKind),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden), errors.Is(err, common.ErrorNotOwner):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the mapped status for err, hiding internal errors behind a
// generic message while the full error goes to the log.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(status, errorBody(common.ErrorInternal))
		return
	}
	c.JSON(status, errorBody(err))
}
