package http

import (
	"time"

	"github.com/nikonik/mediavault/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// userResponse is the outward shape of a user. The password hash never
// crosses the API boundary.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(us []*models.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toUserResponse(u))
	}
	return out
}

type renameMediaRequest struct {
	Title string `json:"title" binding:"required"`
}

type mediaResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMediaResponse(m *models.Media) mediaResponse {
	return mediaResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		URL:       m.URL,
		Kind:      m.Kind,
		CreatedAt: m.CreatedAt,
	}
}

func toMediaResponses(ms []*models.Media) []mediaResponse {
	out := make([]mediaResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMediaResponse(m))
	}
	return out
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactResponse(m *models.ContactMessage) contactResponse {
	return contactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

type ratingRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRatingResponse(r *models.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
