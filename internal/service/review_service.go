package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService struct {
	uow     uow.UOW
	effects *SideEffects
}

func NewReviewService(u uow.UOW, effects *SideEffects) *ReviewService {
	return &ReviewService{uow: u, effects: effects}
}

type CreateReviewResult struct {
	Review  *domain.Review
	Artisan *domain.ArtisanProfile
}

// Create сохраняет отзыв клиента о завершенном бронировании и пересчитывает рейтинг ремесленника
// в той же транзакции.
func (r *ReviewService) Create(
	ctx context.Context,
	customerID, bookingID int64,
	rating int,
	comment string,
) (*CreateReviewResult, error) {
	if rating < minRating || rating > maxRating {
		return nil, domain.ErrInvalidRating
	}

	var res CreateReviewResult
	err := r.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, repoargs.BookingRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}
		reviewRepo, err := uow.GetAs[ReviewRepository](tx, repoargs.ReviewRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}
		artisanRepo, err := uow.GetAs[ArtisanRepository](tx, repoargs.ArtisanRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking, err := bookingRepo.FindByIDForUpdate(c, bookingID)
		if err != nil {
			return notFoundAs(err, domain.ErrBookingNotFound)
		}
		if booking.CustomerID != customerID {
			return domain.ErrNotAuthorized
		}
		if booking.Status != domain.BookingStatusCompleted {
			return fmt.Errorf("%w: only completed bookings can be reviewed, booking is `%s`",
				domain.ErrInvalidTransition, booking.Status)
		}

		exists, err := reviewRepo.ExistsForBooking(c, bookingID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if exists {
			return domain.ErrReviewAlreadyExists
		}

		review, err := reviewRepo.Create(c, repoargs.CreateReview{
			BookingID:  booking.ID,
			CustomerID: customerID,
			ArtisanID:  booking.ArtisanID,
			Rating:     rating,
			Comment:    strings.TrimSpace(comment),
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return domain.ErrReviewAlreadyExists
			}
			return err //nolint:wrapcheck
		}

		artisan, err := artisanRepo.RecalculateRating(c, booking.ArtisanID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		res = CreateReviewResult{Review: review, Artisan: artisan}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review booking %d: %w", bookingID, err)
	}

	refID, refType := bookingRef(bookingID)
	r.effects.notify(ctx, domain.Notification{
		UserID:        res.Artisan.UserID,
		Type:          domain.NotificationReview,
		Title:         "New review",
		Message:       fmt.Sprintf("You received a %d-star review for booking #%d.", rating, bookingID),
		ReferenceID:   refID,
		ReferenceType: refType,
	})
	return &res, nil
}
