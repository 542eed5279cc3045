package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikonik/mediavault/internal/server/admin"
)

func loginAdmin(t *testing.T, env *testEnv) tokenPairResponse {
	t.Helper()

	_, err := env.usersSvc.CreateAdmin(context.Background(), "root", "admin@example.com", "password123")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "admin@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeJSON[tokenPairResponse](t, rec)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	adminPair := loginAdmin(t, env)
	alice := env.registerAndLogin(t, "alice@example.com")

	require.Equal(t, http.StatusCreated,
		env.doUpload(t, alice.AccessToken, "p", "p.jpg", "image/jpeg", []byte("x")).Code)
	require.Equal(t, http.StatusCreated,
		env.doUpload(t, alice.AccessToken, "v", "v.mp4", "video/mp4", []byte("y")).Code)

	rec := env.do(t, http.MethodGet, "/api/admin/stats", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeJSON[admin.Stats](t, rec)
	assert.Equal(t, int64(2), stats.TotalUsers) // admin + alice
	assert.Equal(t, int64(1), stats.TotalImages)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(2), stats.TotalMedia)
}

func TestAdminListAndDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	adminPair := loginAdmin(t, env)
	env.registerAndLogin(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/admin/users", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeJSON[[]userResponse](t, rec)
	require.Len(t, list, 2)

	var aliceID string
	for _, u := range list {
		if u.Email == "alice@example.com" {
			aliceID = u.ID
		}
	}
	require.NotEmpty(t, aliceID)

	del := env.do(t, http.MethodDelete, "/api/admin/users/"+aliceID, adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, del.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/users", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]userResponse](t, rec), 1)
}

// Deleting a user must also release every blob they own, not just the
// database rows.
func TestAdminDeleteUserRemovesBlobs(t *testing.T) {
	env := newTestEnv(t)
	adminPair := loginAdmin(t, env)
	alice := env.registerAndLogin(t, "alice@example.com")

	require.Equal(t, http.StatusCreated,
		env.doUpload(t, alice.AccessToken, "p", "p.jpg", "image/jpeg", []byte("x")).Code)
	require.Equal(t, http.StatusCreated,
		env.doUpload(t, alice.AccessToken, "v", "v.mp4", "video/mp4", []byte("y")).Code)
	require.Len(t, env.blobs.blobs, 2)

	me := env.do(t, http.MethodGet, "/api/auth/me", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, me.Code)
	aliceID := decodeJSON[userResponse](t, me).ID

	del := env.do(t, http.MethodDelete, "/api/admin/users/"+aliceID, adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, del.Code)

	assert.Empty(t, env.blobs.blobs)

	all := env.do(t, http.MethodGet, "/api/admin/media", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Empty(t, decodeJSON[[]mediaResponse](t, all))
}

func TestAdminListAllMedia(t *testing.T) {
	env := newTestEnv(t)
	adminPair := loginAdmin(t, env)
	alice := env.registerAndLogin(t, "alice@example.com")
	bob := env.registerAndLogin(t, "bob@example.com")

	require.Equal(t, http.StatusCreated,
		env.doUpload(t, alice.AccessToken, "a", "a.jpg", "image/jpeg", []byte("x")).Code)
	require.Equal(t, http.StatusCreated,
		env.doUpload(t, bob.AccessToken, "b", "b.jpg", "image/jpeg", []byte("y")).Code)

	rec := env.do(t, http.MethodGet, "/api/admin/media", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]mediaResponse](t, rec), 2)
}

func TestAdminContactsAndRatings(t *testing.T) {
	env := newTestEnv(t)
	adminPair := loginAdmin(t, env)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "message": "hello",
	}).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/ratings", "", gin.H{
		"score": 3,
	}).Code)

	contacts := env.do(t, http.MethodGet, "/api/admin/contacts", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, contacts.Code)
	contactList := decodeJSON[[]contactResponse](t, contacts)
	require.Len(t, contactList, 1)

	ratings := env.do(t, http.MethodGet, "/api/admin/ratings", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, ratings.Code)
	ratingList := decodeJSON[[]ratingResponse](t, ratings)
	require.Len(t, ratingList, 1)

	delContact := env.do(t, http.MethodDelete, "/api/admin/contacts/"+contactList[0].ID, adminPair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, delContact.Code)

	delRating := env.do(t, http.MethodDelete, "/api/admin/ratings/"+ratingList[0].ID, adminPair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, delRating.Code)
}

// The full promotion scenario: a fresh user cannot see admin routes until
// an admin account is bootstrapped out of band and used to log in.
func TestAdminAccessScenario(t *testing.T) {
	env := newTestEnv(t)

	alice := env.registerAndLogin(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/admin/stats", alice.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminPair := loginAdmin(t, env)

	rec = env.do(t, http.MethodGet, "/api/admin/stats", adminPair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
