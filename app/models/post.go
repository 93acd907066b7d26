package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements.
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	switch p.Type {
	case PostTypeText:
		if p.Body == "" {
			return errors.New("body is required for text posts")
		}
	case PostTypeLink:
		if p.LinkURL == "" {
			return errors.New("link_url is required for link posts")
		}
	case PostTypePhoto:
		if p.ImageURL == "" {
			return errors.New("image_url is required for photo posts")
		}
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.AuthorID == nil && p.AuthorName == "" {
		p.AuthorName = "Guest"
	}
}

// Summary builds the feed-facing view of the post.
func (p *Post) Summary(commentCount int) PostSummary {
	return PostSummary{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt,
		Type:         p.Type,
		Title:        p.Title,
		Body:         p.Body,
		LinkURL:      p.LinkURL,
		ImageURL:     p.ImageURL,
		AuthorName:   p.AuthorName,
		CommentCount: commentCount,
	}
}

// Cursor returns the post's position in the newest-first feed ordering.
func (p *Post) Cursor() FeedCursor {
	return FeedCursor{CreatedAt: p.CreatedAt, ID: p.ID}
}
