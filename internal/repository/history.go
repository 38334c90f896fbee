package repository

import (
	"context"
	"fmt"

	"kbarticle/enhancer/internal/domain"
)

type HistoryRepository interface {
	SavePageView(ctx context.Context, view domain.PageView) error
}

type historyRepository struct {
	db execer
}

func NewHistoryRepository(db execer) HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

func (r *historyRepository) SavePageView(ctx context.Context, view domain.PageView) error {
	query := `
	INSERT INTO page_views (article_id, title, locale, referring_page, archive, viewed_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, view.ArticleID, view.Title, view.Locale, view.ReferringPage, view.Archive, view.ViewedAt)
	if err != nil {
		return fmt.Errorf("failed to save page view: %w", err)
	}

	return nil
}
