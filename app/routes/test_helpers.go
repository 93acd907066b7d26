package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallboard/app/cache"
	"wallboard/app/metrics"
	"wallboard/app/repositories/mock"
	"wallboard/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires the full stack on mock repositories and an
// in-process cache.
func setupTestRouter(t *testing.T) (*mux.Router, *metrics.Metrics) {
	t.Helper()

	commentRepo := mock.NewCommentRepository()
	postRepo := mock.NewPostRepository(commentRepo)
	userRepo := mock.NewUserRepository()
	feedCache := cache.NewMemory()
	m := metrics.New("test")

	router := SetupRoutes(Deps{
		Posts:           services.NewPostService(postRepo, feedCache, m, 5*time.Second, 50),
		Comments:        services.NewCommentService(postRepo, commentRepo, feedCache, m),
		Auth:            services.NewAuthService(userRepo, m, "test-secret", time.Hour),
		Library:         services.NewLibraryService(feedCache, m, time.Minute),
		Metrics:         m,
		DefaultPageSize: 10,
	})
	return router, m
}

func doJSON(t *testing.T, router *mux.Router, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createTestPost(t *testing.T, router *mux.Router, title string) map[string]interface{} {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/posts", map[string]interface{}{
		"type":        "text",
		"title":       title,
		"body":        "test body for " + title,
		"author_name": "tester",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	decodeBody(t, rec, &created)
	return created
}
