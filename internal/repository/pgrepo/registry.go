package pgrepo

import (
	"fmt"

	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

// RegisterRepositories регистрирует все репозитории в unit of work.
func RegisterRepositories(u uow.UOW) error {
	factories := map[uow.RepositoryName]uow.RepositoryFactory{
		repoargs.WalletRepoName: func(conn uow.DBTX) uow.Repository {
			return NewWalletRepository(conn)
		},
		repoargs.WalletTransactionRepoName: func(conn uow.DBTX) uow.Repository {
			return NewWalletTransactionRepository(conn)
		},
		repoargs.BookingRepoName: func(conn uow.DBTX) uow.Repository {
			return NewBookingRepository(conn)
		},
		repoargs.TimelineRepoName: func(conn uow.DBTX) uow.Repository {
			return NewTimelineRepository(conn)
		},
		repoargs.ReviewRepoName: func(conn uow.DBTX) uow.Repository {
			return NewReviewRepository(conn)
		},
		repoargs.ArtisanRepoName: func(conn uow.DBTX) uow.Repository {
			return NewArtisanRepository(conn)
		},
		repoargs.CatalogRepoName: func(conn uow.DBTX) uow.Repository {
			return NewCatalogRepository(conn)
		},
		repoargs.PaymentRepoName: func(conn uow.DBTX) uow.Repository {
			return NewPaymentRepository(conn)
		},
		repoargs.NotificationRepoName: func(conn uow.DBTX) uow.Repository {
			return NewNotificationRepository(conn)
		},
	}
	for name, factory := range factories {
		if err := u.Register(name, factory); err != nil {
			return fmt.Errorf("register repository `%s`: %w", name, err)
		}
	}
	return nil
}
