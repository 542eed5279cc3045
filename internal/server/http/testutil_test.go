package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nikonik/mediavault/internal/common"
	"github.com/nikonik/mediavault/internal/logging"
	"github.com/nikonik/mediavault/internal/server/admin"
	"github.com/nikonik/mediavault/internal/server/auth"
	"github.com/nikonik/mediavault/internal/server/config"
	"github.com/nikonik/mediavault/internal/server/feedback"
	"github.com/nikonik/mediavault/internal/server/media"
	"github.com/nikonik/mediavault/internal/server/models"
	mediarepo "github.com/nikonik/mediavault/internal/server/repositories/media"
	usersrepo "github.com/nikonik/mediavault/internal/server/repositories/users"
	"github.com/nikonik/mediavault/internal/server/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsersRepo struct {
	items map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{items: make(map[string]*models.User)}
}

func (r *memUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.items {
		if u.Email == user.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.items[u.ID] = &u
	return &u, nil
}

func (r *memUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *memUsersRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUsersRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memUsersRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type memMediaRepo struct {
	items map[string]*models.Media
}

func newMemMediaRepo() *memMediaRepo {
	return &memMediaRepo{items: make(map[string]*models.Media)}
}

func (r *memMediaRepo) Create(_ context.Context, m *models.Media) (*models.Media, error) {
	item := *m
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = &item
	return &item, nil
}

func (r *memMediaRepo) GetByID(_ context.Context, id string) (*models.Media, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (r *memMediaRepo) ListByUser(_ context.Context, userID string) ([]*models.Media, error) {
	var out []*models.Media
	for _, m := range r.items {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memMediaRepo) ListAll(_ context.Context) ([]*models.Media, error) {
	out := make([]*models.Media, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	return out, nil
}

func (r *memMediaRepo) UpdateTitle(_ context.Context, id, title string) (*models.Media, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	m.Title = title
	m.UpdatedAt = time.Now()
	return m, nil
}

func (r *memMediaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memMediaRepo) CountByKind(_ context.Context, kind string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (r *memMediaRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type memContactsRepo struct {
	items map[string]*models.ContactMessage
}

func newMemContactsRepo() *memContactsRepo {
	return &memContactsRepo{items: make(map[string]*models.ContactMessage)}
}

func (r *memContactsRepo) Create(_ context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	m := *msg
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	r.items[m.ID] = &m
	return &m, nil
}

func (r *memContactsRepo) List(_ context.Context) ([]*models.ContactMessage, error) {
	out := make([]*models.ContactMessage, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	return out, nil
}

func (r *memContactsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

type memRatingsRepo struct {
	items map[string]*models.Rating
}

func newMemRatingsRepo() *memRatingsRepo {
	return &memRatingsRepo{items: make(map[string]*models.Rating)}
}

func (r *memRatingsRepo) Create(_ context.Context, rating *models.Rating) (*models.Rating, error) {
	m := *rating
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	r.items[m.ID] = &m
	return &m, nil
}

func (r *memRatingsRepo) List(_ context.Context) ([]*models.Rating, error) {
	out := make([]*models.Rating, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	return out, nil
}

func (r *memRatingsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

// memTxRunner satisfies admin.TxRunner over the in-memory repositories.
// After fn succeeds it drops media rows whose owner is gone, like the
// users→media foreign key does in Postgres.
type memTxRunner struct {
	users *memUsersRepo
	media *memMediaRepo
}

func (r *memTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context, usersRepo usersrepo.Repository, mediaRepo mediarepo.Repository) error) error {
	if err := fn(ctx, r.users, r.media); err != nil {
		return err
	}
	for id, m := range r.media.items {
		if _, ok := r.users.items[m.UserID]; !ok {
			delete(r.media.items, id)
		}
	}
	return nil
}

type memBlobStore struct {
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.blobs[key] = data
	return "http://blobs.test/" + key, nil
}

func (s *memBlobStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func (s *memBlobStore) PresignGet(_ context.Context, key string) (string, error) {
	if _, ok := s.blobs[key]; !ok {
		return "", common.ErrorNotFound
	}
	return "http://blobs.test/" + key + "?signed", nil
}

// testEnv bundles a fully wired Server over in-memory backends.
type testEnv struct {
	server    *Server
	router    http.Handler
	usersRepo *memUsersRepo
	mediaRepo *memMediaRepo
	contacts  *memContactsRepo
	ratings   *memRatingsRepo
	blobs     *memBlobStore
	usersSvc  *users.Service
	tokens    *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	usersRepo := newMemUsersRepo()
	mediaRepo := newMemMediaRepo()
	contactsRepo := newMemContactsRepo()
	ratingsRepo := newMemRatingsRepo()
	blobs := newMemBlobStore()

	cfg := &config.Config{PasswordHashCost: 4}
	tokens := auth.NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)

	usersSvc := users.NewService(usersRepo, tokens, cfg)
	mediaSvc := media.NewService(mediaRepo, blobs)
	feedbackSvc := feedback.NewService(contactsRepo, ratingsRepo)
	txRunner := &memTxRunner{users: usersRepo, media: mediaRepo}
	adminSvc := admin.NewService(usersRepo, mediaRepo, contactsRepo, ratingsRepo, txRunner, blobs)

	logger := logging.NewSlogJSONLogger(io.Discard, slog.LevelError)
	srv := NewServer(":0", logger, tokens,
		usersSvc, mediaSvc, feedbackSvc, adminSvc)

	return &testEnv{
		server:    srv,
		router:    srv.Router(),
		usersRepo: usersRepo,
		mediaRepo: mediaRepo,
		contacts:  contactsRepo,
		ratings:   ratingsRepo,
		blobs:     blobs,
		usersSvc:  usersSvc,
		tokens:    tokens,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doUpload(t *testing.T, token, title, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if title != "" {
		require.NoError(t, w.WriteField("title", title))
	}

	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates a regular user and returns their token pair.
func (e *testEnv) registerAndLogin(t *testing.T, email string) tokenPairResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "user-" + email,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	return decodeJSON[tokenPairResponse](t, rec)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
