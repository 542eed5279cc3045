package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/server/auth"
)

func (s *Server) handleSubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	msg, err := s.feedback.SubmitContact(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toContactResponse(msg))
}

// handleSubmitRating accepts both anonymous and authenticated submissions.
// A bearer token, when present and valid, attributes the rating; an absent
// or bad token just leaves the rating anonymous.
func (s *Server) handleSubmitRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	var userID string
	if header := c.GetHeader(common.AuthorizationHeaderName); strings.HasPrefix(header, common.BearerPrefix) {
		if claims, err := s.tokens.VerifyKind(strings.TrimPrefix(header, common.BearerPrefix), auth.KindAccess); err == nil {
			userID = claims.UserID
		}
	}

	rating, err := s.feedback.SubmitRating(c.Request.Context(), userID, req.Score, req.Comment)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRatingResponse(rating))
}
