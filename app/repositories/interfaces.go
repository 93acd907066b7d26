package repositories

import (
	"context"

	"wallboard/app/models"

	"github.com/google/uuid"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	// ListNewest returns up to limit posts ordered newest-first, strictly
	// older than the cursor position when one is given.
	ListNewest(ctx context.Context, limit int, before *models.FeedCursor) ([]*models.Post, error)
	// CommentCounts resolves comment counts for a batch of posts in one query.
	CommentCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByPost returns a post's comments ordered by creation time ascending.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
