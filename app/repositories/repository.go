package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Connect opens a pgx connection pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// schema mirrors the deployed migrations so a fresh database is usable
// without external tooling.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email VARCHAR(320) NOT NULL,
	username VARCHAR(50) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS ix_users_email ON users (email);
CREATE UNIQUE INDEX IF NOT EXISTS ix_users_username ON users (username);

DO $$ BEGIN
	CREATE TYPE post_type AS ENUM ('text', 'link', 'photo');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

CREATE TABLE IF NOT EXISTS posts (
	id UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	type post_type NOT NULL,
	title VARCHAR(140),
	body TEXT,
	link_url VARCHAR(2048),
	image_url VARCHAR(2048),
	author_id UUID REFERENCES users (id) ON DELETE SET NULL,
	author_name VARCHAR(80)
);
CREATE INDEX IF NOT EXISTS ix_posts_created_at ON posts (created_at);

CREATE TABLE IF NOT EXISTS comments (
	id UUID PRIMARY KEY,
	post_id UUID NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	body TEXT NOT NULL,
	author_id UUID REFERENCES users (id) ON DELETE SET NULL,
	author_name VARCHAR(80),
	CONSTRAINT uq_comment_id_post_id UNIQUE (id, post_id)
);
CREATE INDEX IF NOT EXISTS ix_comments_post_id ON comments (post_id);
CREATE INDEX IF NOT EXISTS ix_comments_created_at ON comments (created_at);
`

// EnsureSchema creates the tables, enum and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
