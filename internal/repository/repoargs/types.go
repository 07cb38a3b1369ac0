package repoargs

import "github.com/fsdevblog/hustlaa/pkg/uow"

const (
	WalletRepoName            uow.RepositoryName = "wallet"
	WalletTransactionRepoName uow.RepositoryName = "wallet_transaction"
	BookingRepoName           uow.RepositoryName = "booking"
	TimelineRepoName          uow.RepositoryName = "booking_timeline"
	ReviewRepoName            uow.RepositoryName = "review"
	ArtisanRepoName           uow.RepositoryName = "artisan"
	CatalogRepoName           uow.RepositoryName = "catalog"
	PaymentRepoName           uow.RepositoryName = "payment"
	NotificationRepoName      uow.RepositoryName = "notification"
)
