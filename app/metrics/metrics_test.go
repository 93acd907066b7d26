package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentIncrementsAreNotLost(t *testing.T) {
	m := New("test")

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			m.PostsCreated.WithLabelValues("text").Inc()
			m.CommentsCreated.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(workers), testutil.ToFloat64(m.PostsCreated.WithLabelValues("text")))
	assert.Equal(t, float64(workers), testutil.ToFloat64(m.CommentsCreated))
}

func TestHandlerExposesTextFormat(t *testing.T) {
	m := New("test")
	m.PostsCreated.WithLabelValues("link").Inc()
	m.CacheHits.WithLabelValues("feed").Add(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `test_posts_created_total{type="link"} 1`)
	assert.Contains(t, string(body), `test_feed_cache_hits_total{keyspace="feed"} 2`)
}

func TestCountersAreMonotonic(t *testing.T) {
	m := New("test")

	m.CacheMisses.WithLabelValues("feed").Inc()
	first := testutil.ToFloat64(m.CacheMisses.WithLabelValues("feed"))
	m.CacheMisses.WithLabelValues("feed").Inc()
	second := testutil.ToFloat64(m.CacheMisses.WithLabelValues("feed"))

	assert.Greater(t, second, first)
}
