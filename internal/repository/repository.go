package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// execer is the part of *pgxpool.Pool the repositories use
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS page_views (
	id             BIGSERIAL PRIMARY KEY,
	article_id     TEXT NOT NULL,
	title          TEXT NOT NULL,
	locale         TEXT NOT NULL,
	referring_page TEXT,
	archive        TEXT,
	viewed_at      TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS ratings (
	id         BIGSERIAL PRIMARY KEY,
	article_id TEXT NOT NULL,
	locale     TEXT NOT NULL,
	button     TEXT NOT NULL,
	rating     INTEGER NOT NULL,
	comments   TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureSchema creates the tables if they do not exist yet
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
