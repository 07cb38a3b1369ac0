package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const artisanColumns = `id, user_id, availability_status, rating, total_reviews`

type ArtisanRepository struct {
	conn uow.DBTX
}

func NewArtisanRepository(conn uow.DBTX) *ArtisanRepository {
	return &ArtisanRepository{conn: conn}
}

func (a *ArtisanRepository) FindByID(ctx context.Context, id int64) (*domain.ArtisanProfile, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+artisanColumns+` FROM artisan_profiles WHERE id = $1`, id)
	profile, err := scanArtisan(row)
	if err != nil {
		return nil, convertErr(err, "finding artisan profile with id %d", id)
	}
	return profile, nil
}

func (a *ArtisanRepository) FindByUserID(ctx context.Context, userID int64) (*domain.ArtisanProfile, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+artisanColumns+` FROM artisan_profiles WHERE user_id = $1`, userID)
	profile, err := scanArtisan(row)
	if err != nil {
		return nil, convertErr(err, "finding artisan profile by userID %d", userID)
	}
	return profile, nil
}

// RecalculateRating пересчитывает рейтинг и количество отзывов по таблице reviews. Среднее
// округляется до двух знаков, как хранится в колонке rating.
func (a *ArtisanRepository) RecalculateRating(ctx context.Context, id int64) (*domain.ArtisanProfile, error) {
	row := a.conn.QueryRow(ctx, `
		UPDATE artisan_profiles ap
		SET rating        = stats.avg_rating,
		    total_reviews = stats.cnt
		FROM (SELECT COALESCE(ROUND(AVG(rating), 2), 0) AS avg_rating, COUNT(*) AS cnt
		      FROM reviews
		      WHERE artisan_id = $1) stats
		WHERE ap.id = $1
		RETURNING ap.id, ap.user_id, ap.availability_status, ap.rating, ap.total_reviews`, id,
	)
	profile, err := scanArtisan(row)
	if err != nil {
		return nil, convertErr(err, "recalculating rating of artisan %d", id)
	}
	return profile, nil
}

func scanArtisan(row pgx.Row) (*domain.ArtisanProfile, error) {
	var (
		p            domain.ArtisanProfile
		availability string
	)
	if err := row.Scan(&p.ID, &p.UserID, &availability, &p.Rating, &p.TotalReviews); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.AvailabilityStatus = domain.AvailabilityStatus(availability)
	return &p, nil
}
