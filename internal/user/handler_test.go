package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogapi/service/internal/middleware"
	"github.com/blogapi/service/internal/response"
)

func testRouter(store *fakeUserStore, presigner *fakePresigner) chi.Router {
	h := NewHandler(newTestService(store, presigner))
	r := chi.NewRouter()
	r.Get("/users/me", h.GetMe)
	r.Get("/users/username-check", h.CheckUsername)
	r.Post("/users/me/profile-image/upload-url", h.CreateUploadURL)
	r.Put("/users/me/profile-image", h.ConfirmProfileImage)
	return r
}

func authedRequest(method, target, body string, callerID int64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if callerID > 0 {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, callerID))
	}
	return req
}

func TestHandlerCreateUploadURL(t *testing.T) {
	store := newFakeUserStore()
	_, err := store.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	router := testRouter(store, newFakePresigner())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/users/me/profile-image/upload-url",
		`{"fileName":"me.png","contentType":"image/png","contentLength":1024}`, 1))

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Success bool        `json:"success"`
		Data    UploadGrant `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "users/1/profile-image.png", env.Data.ImagePath)
	assert.NotEmpty(t, env.Data.UploadURL)
}

func TestHandlerCreateUploadURLRejections(t *testing.T) {
	router := testRouter(newFakeUserStore(), newFakePresigner())

	tests := []struct {
		name   string
		body   string
		caller int64
		status int
	}{
		{"negative length", `{"fileName":"me.png","contentType":"image/png","contentLength":-1}`, 1, http.StatusBadRequest},
		{"non-image type", `{"fileName":"me.bin","contentType":"application/octet-stream","contentLength":10}`, 1, http.StatusBadRequest},
		{"malformed json", `{"fileName":`, 1, http.StatusBadRequest},
		{"unauthenticated", `{"fileName":"me.png","contentType":"image/png","contentLength":10}`, 0, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, "/users/me/profile-image/upload-url", tt.body, tt.caller))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlerConfirmProfileImage(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	u, err := store.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	presigner := newFakePresigner()
	presigner.objects[ProfileImagePath(u.ID)] = true
	router := testRouter(store, presigner)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/users/me/profile-image",
		`{"imagePath":"users/1/profile-image.png"}`, 1))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A path derived for another user is refused even though the object exists.
	presigner.objects["users/2/profile-image.png"] = true
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/users/me/profile-image",
		`{"imagePath":"users/2/profile-image.png"}`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCheckUsername(t *testing.T) {
	store := newFakeUserStore()
	_, err := store.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	router := testRouter(store, newFakePresigner())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/username-check?username=alice", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["available"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/username-check?username=bob", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	data, ok = env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["available"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/username-check", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetMe(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	u, err := store.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	path := ProfileImagePath(u.ID)
	u.ImagePath = &path
	router := testRouter(store, newFakePresigner())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/users/me", "", 1))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data profileData `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "alice", env.Data.Username)
	assert.Equal(t, "http://store.local/users/1/profile-image.png", env.Data.ImageURL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/users/me", "", 99))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
