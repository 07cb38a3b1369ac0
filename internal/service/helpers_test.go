package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/internal/service/mocks"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	uowmocks "github.com/fsdevblog/hustlaa/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	testCustomerUserID int64 = 10
	testArtisanUserID  int64 = 20
	testArtisanID      int64 = 2
	testWalletID       int64 = 7
	testBookingID      int64 = 100
)

// serviceMocks общий набор моков для тестов сервисов. Все репозитории доступны как через uow,
// так и через транзакцию, а uow.Do сразу вызывает переданную функцию.
type serviceMocks struct {
	ctrl         *gomock.Controller
	uow          *uowmocks.MockUOW
	tx           *uowmocks.MockTX
	walletRepo   *mocks.MockWalletRepository
	transRepo    *mocks.MockWalletTransactionRepository
	bookingRepo  *mocks.MockBookingRepository
	timelineRepo *mocks.MockTimelineRepository
	reviewRepo   *mocks.MockReviewRepository
	artisanRepo  *mocks.MockArtisanRepository
	catalogRepo  *mocks.MockCatalogRepository
	paymentRepo  *mocks.MockPaymentRepository
	notifier     *mocks.MockNotifier
	mailer       *mocks.MockMailer
	publisher    *mocks.MockEventPublisher
	gateway      *mocks.MockPaymentGateway
	logger       *logrus.Logger
	effects      *SideEffects
}

func newServiceMocks(t *testing.T) *serviceMocks {
	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		ctrl:         ctrl,
		uow:          uowmocks.NewMockUOW(ctrl),
		tx:           uowmocks.NewMockTX(ctrl),
		walletRepo:   mocks.NewMockWalletRepository(ctrl),
		transRepo:    mocks.NewMockWalletTransactionRepository(ctrl),
		bookingRepo:  mocks.NewMockBookingRepository(ctrl),
		timelineRepo: mocks.NewMockTimelineRepository(ctrl),
		reviewRepo:   mocks.NewMockReviewRepository(ctrl),
		artisanRepo:  mocks.NewMockArtisanRepository(ctrl),
		catalogRepo:  mocks.NewMockCatalogRepository(ctrl),
		paymentRepo:  mocks.NewMockPaymentRepository(ctrl),
		notifier:     mocks.NewMockNotifier(ctrl),
		mailer:       mocks.NewMockMailer(ctrl),
		publisher:    mocks.NewMockEventPublisher(ctrl),
		gateway:      mocks.NewMockPaymentGateway(ctrl),
		logger:       logrus.New(),
	}
	m.logger.SetOutput(io.Discard)
	m.effects = NewSideEffects(m.notifier, m.mailer, m.publisher, m.logger)

	repos := map[uow.RepositoryName]uow.Repository{
		repoargs.WalletRepoName:            m.walletRepo,
		repoargs.WalletTransactionRepoName: m.transRepo,
		repoargs.BookingRepoName:           m.bookingRepo,
		repoargs.TimelineRepoName:          m.timelineRepo,
		repoargs.ReviewRepoName:            m.reviewRepo,
		repoargs.ArtisanRepoName:           m.artisanRepo,
		repoargs.CatalogRepoName:           m.catalogRepo,
		repoargs.PaymentRepoName:           m.paymentRepo,
	}
	for name, repo := range repos {
		m.uow.EXPECT().GetRepository(name).Return(repo, nil).AnyTimes()
		m.tx.EXPECT().Get(name).Return(repo, nil).AnyTimes()
	}

	m.uow.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()

	return m
}

// expectEffects разрешает любые побочные эффекты после коммита.
func (m *serviceMocks) expectEffects() {
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.mailer.EXPECT().SendBookingEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func testWallet(balance int64) *domain.Wallet {
	return &domain.Wallet{
		ID:          testWalletID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		UserID:      testCustomerUserID,
		Balance:     decimal.NewFromInt(balance),
		TotalEarned: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}
}

func testBooking(status domain.BookingStatus, total int64) *domain.Booking {
	return &domain.Booking{
		ID:              testBookingID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		CustomerID:      testCustomerUserID,
		ArtisanID:       testArtisanID,
		ServiceID:       3,
		BookingDate:     time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		BookingTime:     "10:00:00",
		LocationAddress: "12 Admiralty Way, Lekki",
		TotalAmount:     decimal.NewFromInt(total),
		Status:          status,
	}
}

func testArtisan(availability domain.AvailabilityStatus) *domain.ArtisanProfile {
	return &domain.ArtisanProfile{
		ID:                 testArtisanID,
		UserID:             testArtisanUserID,
		AvailabilityStatus: availability,
		Rating:             decimal.Zero,
	}
}

// withStatus копия бронирования в новом статусе.
func withStatus(b *domain.Booking, status domain.BookingStatus) *domain.Booking {
	c := *b
	c.Status = status
	return &c
}

// echoTransaction возвращает транзакцию, собранную из аргументов вызова Create.
func echoTransaction(id int64) func(context.Context, repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error) {
	return func(_ context.Context, args repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error) {
		return &domain.WalletTransaction{
			ID:            id,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
			WalletID:      args.WalletID,
			Type:          args.Type,
			Amount:        args.Amount,
			Description:   args.Description,
			ReferenceID:   args.ReferenceID,
			ReferenceType: args.ReferenceType,
			Status:        args.Status,
			BalanceBefore: args.BalanceBefore,
			BalanceAfter:  args.BalanceAfter,
		}, nil
	}
}

// balanceUpdateMatcher сравнивает суммы через decimal.Equal: представление одного и того же
// числа в decimal может отличаться.
type balanceUpdateMatcher struct {
	want repoargs.UpdateWalletBalance
}

func matchBalanceUpdate(walletID int64, balance, earned, spent decimal.Decimal) gomock.Matcher {
	return balanceUpdateMatcher{want: repoargs.UpdateWalletBalance{
		WalletID:    walletID,
		Balance:     balance,
		EarnedDelta: earned,
		SpentDelta:  spent,
	}}
}

func (m balanceUpdateMatcher) Matches(x interface{}) bool {
	got, ok := x.(repoargs.UpdateWalletBalance)
	if !ok {
		return false
	}
	return got.WalletID == m.want.WalletID &&
		got.Balance.Equal(m.want.Balance) &&
		got.EarnedDelta.Equal(m.want.EarnedDelta) &&
		got.SpentDelta.Equal(m.want.SpentDelta)
}

func (m balanceUpdateMatcher) String() string {
	return fmt.Sprintf("wallet %d: balance=%s earned+=%s spent+=%s",
		m.want.WalletID, m.want.Balance, m.want.EarnedDelta, m.want.SpentDelta)
}
