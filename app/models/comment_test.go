package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:     uuid.New(),
				PostID: uuid.New(),
				Body:   "A perfectly fine comment",
			},
			wantErr: false,
		},
		{
			name: "empty body",
			comment: &Comment{
				ID:     uuid.New(),
				PostID: uuid.New(),
				Body:   "",
			},
			wantErr: true,
		},
		{
			name: "body too long",
			comment: &Comment{
				ID:     uuid.New(),
				PostID: uuid.New(),
				Body:   strings.Repeat("a", 5001),
			},
			wantErr: true,
		},
		{
			name: "missing post id",
			comment: &Comment{
				ID:   uuid.New(),
				Body: "orphan comment",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{
		ID:     uuid.New(),
		PostID: uuid.New(),
		Body:   "hello",
	}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
	assert.Equal(t, "Guest", comment.AuthorName)
}
