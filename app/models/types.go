package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// PostType enumerates the kinds of wall posts.
type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypeLink  PostType = "link"
	PostTypePhoto PostType = "photo"
)

// Valid reports whether t is one of the enumerated post types.
func (t PostType) Valid() bool {
	switch t {
	case PostTypeText, PostTypeLink, PostTypePhoto:
		return true
	}
	return false
}

// Post is a wall post. Immutable after creation; the comment count shown in
// feed pages is derived from the comments table, not stored here.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Type       PostType   `json:"type" validate:"required,oneof=text link photo"`
	Title      string     `json:"title,omitempty" validate:"max=140"`
	Body       string     `json:"body,omitempty"`
	LinkURL    string     `json:"link_url,omitempty" validate:"omitempty,url,max=2048"`
	ImageURL   string     `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	AuthorID   *uuid.UUID `json:"author_id,omitempty"`
	AuthorName string     `json:"author_name,omitempty" validate:"max=80"`
}

// Comment belongs to exactly one post and is ordered by creation time within it.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Body       string     `json:"body" validate:"required,min=1,max=5000"`
	AuthorID   *uuid.UUID `json:"author_id,omitempty"`
	AuthorName string     `json:"author_name,omitempty" validate:"max=80"`
}

// User is a registered account. Guests post with a bare author name instead.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email" validate:"required,email,max=320"`
	Username     string    `json:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostSummary is the feed-facing view of a post with its comment count.
type PostSummary struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Type         PostType  `json:"type"`
	Title        string    `json:"title,omitempty"`
	Body         string    `json:"body,omitempty"`
	LinkURL      string    `json:"link_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	AuthorName   string    `json:"author_name,omitempty"`
	CommentCount int       `json:"comment_count"`
}

// FeedPage is a derived, cacheable slice of the wall. Not persisted; always
// rebuilt from post rows on a cache miss.
type FeedPage struct {
	Items      []PostSummary `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// FeedCursor marks a position in the newest-first feed ordering.
type FeedCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        uuid.UUID `json:"id"`
}
