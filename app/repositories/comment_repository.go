package repositories

import (
	"context"

	"wallboard/app/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCommentRepository implements CommentRepository backed by Postgres.
type PgCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgCommentRepository creates a new PgCommentRepository.
func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

// Create inserts a new comment. The post_id foreign key rejects comments on
// posts that do not exist.
func (r *PgCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, post_id, created_at, body, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		comment.ID, comment.PostID, comment.CreatedAt, comment.Body,
		comment.AuthorID, comment.AuthorName,
	)
	return err
}

// ListByPost retrieves a post's comments ordered by creation time ascending.
func (r *PgCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, created_at, body, author_id, COALESCE(author_name, '')
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.CreatedAt,
			&comment.Body, &comment.AuthorID, &comment.AuthorName,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
