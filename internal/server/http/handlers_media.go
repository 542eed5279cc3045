package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUploadMedia(c *gin.Context) {
	userID, _ := identity(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	item, err := s.media.Upload(c.Request.Context(), userID, title, contentType, file)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "media uploaded",
		"user_id", userID, "media_id", item.ID, "kind", item.Kind)
	c.JSON(http.StatusCreated, toMediaResponse(item))
}

func (s *Server) handleListMedia(c *gin.Context) {
	userID, _ := identity(c)

	items, err := s.media.ListOwn(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toMediaResponses(items))
}

func (s *Server) handleRenameMedia(c *gin.Context) {
	userID, _ := identity(c)

	var req renameMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	item, err := s.media.Rename(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toMediaResponse(item))
}

func (s *Server) handleDeleteMedia(c *gin.Context) {
	userID, _ := identity(c)

	if err := s.media.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}

// handleDownloadMedia returns a short-lived presigned URL rather than
// proxying blob bytes through the API server.
func (s *Server) handleDownloadMedia(c *gin.Context) {
	userID, _ := identity(c)

	url, err := s.media.DownloadURL(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
