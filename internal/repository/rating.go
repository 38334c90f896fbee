package repository

import (
	"context"
	"fmt"

	"kbarticle/enhancer/internal/domain"
)

type RatingRepository interface {
	SaveRating(ctx context.Context, rating domain.Rating) error
}

type ratingRepository struct {
	db execer
}

func NewRatingRepository(db execer) RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

func (r *ratingRepository) SaveRating(ctx context.Context, rating domain.Rating) error {
	query := `
	INSERT INTO ratings (article_id, locale, button, rating, comments)
	VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, rating.ArticleID, rating.Locale, string(rating.Button), rating.Value, rating.Comments)
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	return nil
}
