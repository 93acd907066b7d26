package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickExercisesTheAPI(t *testing.T) {
	var mu sync.Mutex
	hits := make(map[string]int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.Method+" "+r.URL.Path]++
		mu.Unlock()

		switch {
		case r.URL.Path == "/posts" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]string{{"id": "3e1c1c9e-0000-0000-0000-000000000001"}},
			})
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "3e1c1c9e-0000-0000-0000-000000000002"})
		default:
			json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		}
	}))
	defer server.Close()

	g := New(server.URL, "load-bot")
	// Several ticks so the probabilistic writes fire with near certainty.
	for i := 0; i < 50; i++ {
		g.Tick()
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, hits["GET /healthz"], "every tick probes health")
	assert.GreaterOrEqual(t, hits["GET /posts"], 50, "every tick reads the feed")
	assert.Greater(t, hits["POST /posts"], 0, "post creation should fire across many ticks")
}

func TestCommentOnLatestHandlesEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Errorf("no comment should be posted when the feed is empty")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	}))
	defer server.Close()

	g := New(server.URL, "load-bot")
	g.commentOnLatest(context.Background())
}

func TestRequestToleratesDownstreamOutage(t *testing.T) {
	g := New("http://127.0.0.1:1", "load-bot")

	status, body := g.request(context.Background(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, 0, status)
	assert.Nil(t, body)
	require.NotPanics(t, g.Tick)
}
