package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["ts"])
}

func TestCreatePost(t *testing.T) {
	router, _ := setupTestRouter(t)

	created := createTestPost(t, router, "hello wall")
	assert.Equal(t, "text", created["type"])
	assert.Equal(t, "hello wall", created["title"])
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["created_at"])
}

func TestCreatePostValidationError(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/posts", map[string]interface{}{
		"type":  "carrier-pigeon",
		"title": "nope",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "validation", body["kind"])
	assert.NotEmpty(t, body["error"])
}

func TestCreatePostInvalidJSON(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/posts", "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPostsReflectsNewPost(t *testing.T) {
	router, _ := setupTestRouter(t)

	createTestPost(t, router, "older")

	// Prime the cache, then write again.
	rec := doJSON(t, router, http.MethodGet, "/posts?limit=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	created := createTestPost(t, router, "newest")

	rec = doJSON(t, router, http.MethodGet, "/posts?limit=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
	}
	decodeBody(t, rec, &page)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, created["id"], page.Items[0].ID,
		"a created post must appear first on the next listing")
}

func TestListPostsRespectsLimit(t *testing.T) {
	router, _ := setupTestRouter(t)

	for i := 0; i < 5; i++ {
		createTestPost(t, router, fmt.Sprintf("post %d", i))
	}

	rec := doJSON(t, router, http.MethodGet, "/posts?limit=3", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []map[string]interface{} `json:"items"`
		NextCursor string                   `json:"next_cursor"`
	}
	decodeBody(t, rec, &page)
	assert.LessOrEqual(t, len(page.Items), 3)
	assert.NotEmpty(t, page.NextCursor)
}

func TestListPostsCacheCounters(t *testing.T) {
	router, m := setupTestRouter(t)

	createTestPost(t, router, "cached")

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodGet, "/posts?limit=10", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMisses.WithLabelValues("feed")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheHits.WithLabelValues("feed")))
}

func TestListPostsInvalidCursor(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/posts?limit=10&cursor=%21%21%21", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentOnMissingPost(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/posts/"+uuid.NewString()+"/comments", map[string]interface{}{
		"body": "hello?",
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "not_found", body["kind"])
}

func TestCommentWithMalformedPostID(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/posts/not-a-uuid/comments", map[string]interface{}{
		"body": "hello?",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndListComments(t *testing.T) {
	router, _ := setupTestRouter(t)

	post := createTestPost(t, router, "commented post")
	postID := post["id"].(string)

	rec := doJSON(t, router, http.MethodPost, "/posts/"+postID+"/comments", map[string]interface{}{
		"body":        "first!",
		"author_name": "carol",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	decodeBody(t, rec, &created)
	assert.Equal(t, postID, created["post_id"])
	assert.Equal(t, "first!", created["body"])

	rec = doJSON(t, router, http.MethodGet, "/posts/"+postID+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []map[string]interface{}
	decodeBody(t, rec, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "carol", comments[0]["author_name"])
}

func TestRegisterLoginAndAuthoredPost(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &token)
	require.NotEmpty(t, token.AccessToken)

	rec = doJSON(t, router, http.MethodPost, "/posts", map[string]interface{}{
		"type": "text",
		"body": "an authored post",
	}, map[string]string{"Authorization": "Bearer " + token.AccessToken})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	decodeBody(t, rec, &created)
	assert.Equal(t, "alice", created["author_name"])
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router, _ := setupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "bob@example.com",
		"username": "bob",
		"password": "password123",
	}
	rec := doJSON(t, router, http.MethodPost, "/auth/register", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auth/register", payload, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "ghost",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLibraryEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/library/recipes", "/library/places", "/library/history"} {
		rec := doJSON(t, router, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var items []map[string]interface{}
		decodeBody(t, rec, &items)
		assert.NotEmpty(t, items, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	createTestPost(t, router, "counted")

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `test_posts_created_total{type="text"} 1`)
	assert.Contains(t, body, "test_http_request_duration_seconds")
}
