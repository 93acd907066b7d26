package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide registry of counters and histograms. It is
// constructed once at startup and shared by every handler and service;
// client_golang guarantees lock-free concurrent increments.
type Metrics struct {
	registry *prometheus.Registry

	PostsCreated    *prometheus.CounterVec
	CommentsCreated prometheus.Counter
	UsersRegistered prometheus.Counter

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	CacheErrors *prometheus.CounterVec

	WriteDuration   *prometheus.HistogramVec
	RequestDuration *prometheus.HistogramVec
}

// New builds a registry with all application metrics under the given namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		PostsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Posts created, by post type.",
		}, []string{"type"}),
		CommentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Comments created.",
		}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "User accounts registered.",
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_hits_total",
			Help:      "Cache lookups served from the cache, by key space.",
		}, []string{"keyspace"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_misses_total",
			Help:      "Cache lookups that fell through to persistence, by key space.",
		}, []string{"keyspace"}),
		CacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_errors_total",
			Help:      "Cache backend failures absorbed by falling through to persistence.",
		}, []string{"keyspace"}),
		WriteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_duration_seconds",
			Help:      "Latency of persistence writes, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by handler, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler", "method", "code"}),
	}

	reg.MustRegister(
		m.PostsCreated,
		m.CommentsCreated,
		m.UsersRegistered,
		m.CacheHits,
		m.CacheMisses,
		m.CacheErrors,
		m.WriteDuration,
		m.RequestDuration,
	)

	return m
}

// Handler exposes the registry in the Prometheus text exposition format.
// Scrapes read a consistent snapshot and never block request handling.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
