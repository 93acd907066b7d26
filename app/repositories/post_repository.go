package repositories

import (
	"context"
	"errors"

	"wallboard/app/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgPostRepository implements PostRepository backed by Postgres.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgPostRepository creates a new PgPostRepository.
func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

const postColumns = `id, created_at, type,
	COALESCE(title, ''), COALESCE(body, ''), COALESCE(link_url, ''),
	COALESCE(image_url, ''), author_id, COALESCE(author_name, '')`

// Create inserts a new post. Empty optional fields are stored as NULL.
func (r *PgPostRepository) Create(ctx context.Context, post *models.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, created_at, type, title, body, link_url, image_url, author_id, author_name)
		VALUES ($1, $2, $3::post_type, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''))`,
		post.ID, post.CreatedAt, string(post.Type), post.Title, post.Body,
		post.LinkURL, post.ImageURL, post.AuthorID, post.AuthorName,
	)
	return err
}

// GetByID retrieves a post by ID.
func (r *PgPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListNewest retrieves up to limit posts ordered newest-first. When a cursor
// is given, only posts strictly older than the (created_at, id) tuple are
// returned, which keeps pages stable under concurrent inserts.
func (r *PgPostRepository) ListNewest(ctx context.Context, limit int, before *models.FeedCursor) ([]*models.Post, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if before != nil {
		rows, err = r.pool.Query(ctx, `
			SELECT `+postColumns+` FROM posts
			WHERE (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $1`,
			limit, before.CreatedAt, before.ID,
		)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+postColumns+` FROM posts
			ORDER BY created_at DESC, id DESC
			LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// CommentCounts returns the comment count per post in a single query.
// Posts without comments are absent from the result map.
func (r *PgPostRepository) CommentCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	ids := make([]string, len(postIDs))
	for i, id := range postIDs {
		ids[i] = id.String()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT post_id, COUNT(*) FROM comments
		WHERE post_id = ANY($1::uuid[])
		GROUP BY post_id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, err
		}
		counts[postID] = count
	}
	return counts, rows.Err()
}

// Exists reports whether a post with the given ID is persisted.
func (r *PgPostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var typ string
	err := row.Scan(
		&post.ID, &post.CreatedAt, &typ, &post.Title, &post.Body,
		&post.LinkURL, &post.ImageURL, &post.AuthorID, &post.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	post.Type = models.PostType(typ)
	return &post, nil
}
