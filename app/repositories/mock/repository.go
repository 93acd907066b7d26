package mock

import (
	"context"
	"sort"
	"sync"

	"wallboard/app/models"
	"wallboard/app/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory repositories for tests. They honor the same ordering and error
// contracts as the Postgres implementations.

type PostRepository struct {
	mutex sync.RWMutex
	posts map[uuid.UUID]*models.Post

	comments *CommentRepository
}

type CommentRepository struct {
	mutex    sync.RWMutex
	comments map[uuid.UUID]*models.Comment
}

type UserRepository struct {
	mutex sync.RWMutex
	users map[uuid.UUID]*models.User
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]*models.Comment)}
}

// NewPostRepository creates a post repository that resolves comment counts
// against the given comment repository.
func NewPostRepository(comments *CommentRepository) *PostRepository {
	return &PostRepository{
		posts:    make(map[uuid.UUID]*models.Post),
		comments: comments,
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*models.User)}
}

// PostRepository implementation

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) ListNewest(ctx context.Context, limit int, before *models.FeedCursor) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if before != nil {
			if post.CreatedAt.After(before.CreatedAt) {
				continue
			}
			if post.CreatedAt.Equal(before.CreatedAt) && post.ID.String() >= before.ID.String() {
				continue
			}
		}
		copied := *post
		posts = append(posts, &copied)
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.String() > posts[j].ID.String()
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *PostRepository) CommentCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postIDs))
	if m.comments == nil {
		return counts, nil
	}

	m.comments.mutex.RLock()
	defer m.comments.mutex.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	for _, comment := range m.comments.comments {
		if wanted[comment.PostID] {
			counts[comment.PostID]++
		}
	}
	return counts, nil
}

func (m *PostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.posts[id]
	return exists, nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID.String() < comments[j].ID.String()
	})
	return comments, nil
}

// UserRepository implementation

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			// Same error shape as Postgres so IsUniqueViolation matches.
			return &pgconn.PgError{Code: "23505", ConstraintName: "ix_users_username"}
		}
	}

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
