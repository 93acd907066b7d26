package services

import (
	"context"
	"log/slog"

	"wallboard/app/apperrors"
	"wallboard/app/cache"
	"wallboard/app/metrics"
	"wallboard/app/models"
	"wallboard/app/repositories"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// CommentService handles business logic for comments.
type CommentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	cache    cache.Cache
	metrics  *metrics.Metrics
}

// NewCommentService creates a new CommentService.
func NewCommentService(posts repositories.PostRepository, comments repositories.CommentRepository, c cache.Cache, m *metrics.Metrics) *CommentService {
	return &CommentService{
		posts:    posts,
		comments: comments,
		cache:    c,
		metrics:  m,
	}
}

// CreateComment validates and persists a comment on an existing post. Feed
// pages embed comment counts, so the feed cache is invalidated here too.
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment, author *models.User) (*models.Comment, error) {
	exists, err := s.posts.Exists(ctx, comment.PostID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to look up post")
	}
	if !exists {
		return nil, apperrors.NotFound("post not found")
	}

	if author != nil {
		comment.AuthorID = &author.ID
		comment.AuthorName = author.Username
	}

	comment.ID = uuid.New()
	comment.BeforeCreate()

	if err := comment.Validate(); err != nil {
		return nil, apperrors.Validation("invalid comment: %v", err)
	}

	timer := prometheus.NewTimer(s.metrics.WriteDuration.WithLabelValues("create_comment"))
	err = s.comments.Create(ctx, comment)
	timer.ObserveDuration()
	if err != nil {
		return nil, apperrors.Internal(err, "failed to create comment")
	}

	s.metrics.CommentsCreated.Inc()

	if err := s.cache.DeletePrefix(ctx, cache.FeedPrefix); err != nil {
		s.metrics.CacheErrors.WithLabelValues("feed").Inc()
		slog.Warn("feed cache invalidation failed", "error", err)
	}

	return comment, nil
}

// ListByPost returns a post's comments ordered oldest-first.
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to look up post")
	}
	if !exists {
		return nil, apperrors.NotFound("post not found")
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list comments")
	}
	return comments, nil
}
