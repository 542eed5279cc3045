package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAdminStats(c *gin.Context) {
	stats, err := s.admin.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleAdminListUsers(c *gin.Context) {
	list, err := s.admin.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(list))
}

func (s *Server) handleAdminDeleteUser(c *gin.Context) {
	if err := s.admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (s *Server) handleAdminListMedia(c *gin.Context) {
	list, err := s.admin.ListMedia(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toMediaResponses(list))
}

func (s *Server) handleAdminListContacts(c *gin.Context) {
	list, err := s.admin.ListContacts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]contactResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toContactResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAdminDeleteContact(c *gin.Context) {
	if err := s.admin.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact message deleted"})
}

func (s *Server) handleAdminListRatings(c *gin.Context) {
	list, err := s.admin.ListRatings(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]ratingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRatingResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAdminDeleteRating(c *gin.Context) {
	if err := s.admin.DeleteRating(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}
