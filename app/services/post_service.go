package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"wallboard/app/apperrors"
	"wallboard/app/cache"
	"wallboard/app/metrics"
	"wallboard/app/models"
	"wallboard/app/repositories"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// PostService handles business logic for wall posts and the feed.
type PostService struct {
	posts   repositories.PostRepository
	cache   cache.Cache
	metrics *metrics.Metrics

	feedTTL     time.Duration
	maxPageSize int
}

// NewPostService creates a new PostService.
func NewPostService(posts repositories.PostRepository, c cache.Cache, m *metrics.Metrics, feedTTL time.Duration, maxPageSize int) *PostService {
	return &PostService{
		posts:       posts,
		cache:       c,
		metrics:     m,
		feedTTL:     feedTTL,
		maxPageSize: maxPageSize,
	}
}

// CreatePost validates and persists a new post, then invalidates every cached
// feed page. The author, when authenticated, overrides any guest name.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post, author *models.User) (*models.Post, error) {
	if author != nil {
		post.AuthorID = &author.ID
		post.AuthorName = author.Username
	}

	post.ID = uuid.New()
	post.BeforeCreate()

	if !post.Type.Valid() {
		return nil, apperrors.Validation("type must be one of text, link, photo")
	}
	if err := post.Validate(); err != nil {
		return nil, apperrors.Validation("invalid post: %v", err)
	}

	timer := prometheus.NewTimer(s.metrics.WriteDuration.WithLabelValues("create_post"))
	err := s.posts.Create(ctx, post)
	timer.ObserveDuration()
	if err != nil {
		return nil, apperrors.Internal(err, "failed to create post")
	}

	s.metrics.PostsCreated.WithLabelValues(string(post.Type)).Inc()
	s.invalidateFeed(ctx)

	return post, nil
}

// ListFeed returns one feed page, serving it from the cache when possible.
// Cache failures are absorbed: the page is recomputed from persistence and
// the failure is only counted and logged.
func (s *PostService) ListFeed(ctx context.Context, limit int, cursor string) (*models.FeedPage, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	var before *models.FeedCursor
	if cursor != "" {
		decoded, err := DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		before = decoded
	}

	key := cache.FeedKey(limit, cursor)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.metrics.CacheErrors.WithLabelValues("feed").Inc()
		slog.Warn("feed cache get failed", "key", key, "error", err)
	} else if ok {
		var page models.FeedPage
		if err := json.Unmarshal(cached, &page); err == nil {
			s.metrics.CacheHits.WithLabelValues("feed").Inc()
			return &page, nil
		}
		slog.Warn("feed cache entry corrupt, recomputing", "key", key)
	} else {
		s.metrics.CacheMisses.WithLabelValues("feed").Inc()
	}

	page, err := s.buildFeedPage(ctx, limit, before)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, data, s.feedTTL); err != nil {
			s.metrics.CacheErrors.WithLabelValues("feed").Inc()
			slog.Warn("feed cache set failed", "key", key, "error", err)
		}
	}

	return page, nil
}

// buildFeedPage computes a page from persistence. It overfetches one row to
// decide whether a next cursor exists, then resolves comment counts for the
// page in a single query.
func (s *PostService) buildFeedPage(ctx context.Context, limit int, before *models.FeedCursor) (*models.FeedPage, error) {
	posts, err := s.posts.ListNewest(ctx, limit+1, before)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list posts")
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	ids := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	counts, err := s.posts.CommentCounts(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to count comments")
	}

	page := &models.FeedPage{Items: make([]models.PostSummary, 0, len(posts))}
	for _, post := range posts {
		page.Items = append(page.Items, post.Summary(counts[post.ID]))
	}
	if hasMore && len(posts) > 0 {
		page.NextCursor = EncodeCursor(posts[len(posts)-1].Cursor())
	}
	return page, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, cache.FeedPrefix); err != nil {
		s.metrics.CacheErrors.WithLabelValues("feed").Inc()
		slog.Warn("feed cache invalidation failed", "error", err)
	}
}
