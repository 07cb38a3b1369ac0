package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

type ReviewRepository struct {
	conn uow.DBTX
}

func NewReviewRepository(conn uow.DBTX) *ReviewRepository {
	return &ReviewRepository{conn: conn}
}

// Create вставляет отзыв. Повторный отзыв на то же бронирование дает ErrDuplicateKey.
func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	var review domain.Review
	err := r.conn.QueryRow(ctx, `
		INSERT INTO reviews (booking_id, customer_id, artisan_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, booking_id, customer_id, artisan_id, rating, comment`,
		args.BookingID, args.CustomerID, args.ArtisanID, args.Rating, args.Comment,
	).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.BookingID,
		&review.CustomerID,
		&review.ArtisanID,
		&review.Rating,
		&review.Comment,
	)
	if err != nil {
		return nil, convertErr(err, "creating review for booking %d", args.BookingID)
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking review of booking %d", bookingID)
	}
	return exists, nil
}
