package service

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	m       *serviceMocks
	service *WalletService
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.m = newServiceMocks(s.T())

	var err error
	s.service, err = NewWalletService(s.m.uow, s.m.effects)
	s.Require().NoError(err)
}

func (s *WalletServiceTestSuite) TearDownTest() {
	s.m.ctrl.Finish()
}

func (s *WalletServiceTestSuite) TestTopUp() {
	ctx := context.Background()
	wallet := testWallet(500)

	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(wallet, nil)
	s.m.walletRepo.EXPECT().
		UpdateBalance(gomock.Any(), matchBalanceUpdate(testWalletID, decimal.NewFromInt(750), decimal.Zero, decimal.Zero)).
		Return(wallet, nil)
	s.m.transRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoTransaction(1))
	s.m.publisher.EXPECT().
		Publish(gomock.Any(), domain.TopicWalletTransactions, "7", gomock.Any()).
		Return(nil)

	res, err := s.service.TopUp(ctx, testCustomerUserID, decimal.NewFromInt(250))
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(750).Equal(res.Balance))
	s.Equal(domain.TransactionDeposit, res.Transaction.Type)
	s.Equal(domain.TransactionStatusCompleted, res.Transaction.Status)
	s.True(decimal.NewFromInt(500).Equal(res.Transaction.BalanceBefore))
	s.True(res.Transaction.BalanceBefore.Add(res.Transaction.Amount).Equal(res.Transaction.BalanceAfter))
}

func (s *WalletServiceTestSuite) TestTopUpInvalidAmount() {
	amounts := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-5),
		decimal.RequireFromString("0.001"),
		decimal.RequireFromString("10.005"),
	}
	// до транзакции дело не доходит
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), gomock.Any()).Times(0)
	s.m.transRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	for _, amount := range amounts {
		_, err := s.service.TopUp(context.Background(), testCustomerUserID, amount)
		s.ErrorIs(err, domain.ErrInvalidAmount, amount.String())
	}
}

func (s *WalletServiceTestSuite) TestSubUnitAmountsRejected() {
	amount := decimal.RequireFromString("99.999")
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), gomock.Any()).Times(0)
	s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.Withdraw(context.Background(), testCustomerUserID, amount, "0123456789")
	s.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, amount)
	s.ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *WalletServiceTestSuite) TestTopUpWalletNotFound() {
	s.m.walletRepo.EXPECT().
		FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.TopUp(context.Background(), testCustomerUserID, decimal.NewFromInt(100))
	s.ErrorIs(err, domain.ErrWalletNotFound)
}

func (s *WalletServiceTestSuite) TestWithdraw() {
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(1000), nil)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(testWallet(600), nil)
	s.m.transRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, args repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error) {
			s.Equal(domain.TransactionWithdrawal, args.Type)
			s.Equal(domain.TransactionStatusPending, args.Status)
			s.Equal("Withdrawal to bank account ****6789", args.Description)
			return echoTransaction(2)(ctx, args)
		})
	s.m.publisher.EXPECT().Publish(gomock.Any(), domain.TopicWalletTransactions, gomock.Any(), gomock.Any())

	res, err := s.service.Withdraw(context.Background(), testCustomerUserID, decimal.NewFromInt(400), "0123456789")
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(600).Equal(res.Balance))
}

func (s *WalletServiceTestSuite) TestWithdrawInsufficientBalance() {
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(500), nil)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Times(0)
	s.m.transRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.Withdraw(context.Background(), testCustomerUserID, decimal.NewFromInt(1000), "")
	s.ErrorIs(err, domain.ErrInsufficientBalance)
}

// expectNotPaid бронирование еще не оплачено ни из кошелька, ни картой.
func (s *WalletServiceTestSuite) expectNotPaid() {
	s.m.transRepo.EXPECT().HasBookingPayment(gomock.Any(), testBookingID).Return(false, nil)
	s.m.paymentRepo.EXPECT().HasCompletedForBooking(gomock.Any(), testBookingID).Return(false, nil)
}

func (s *WalletServiceTestSuite) TestPayBooking() {
	booking := testBooking(domain.BookingStatusPending, 10000)
	amount := decimal.NewFromInt(10000)

	gomock.InOrder(
		s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).Return(booking, nil),
		s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(10000), nil),
	)
	s.expectNotPaid()
	s.m.walletRepo.EXPECT().
		UpdateBalance(gomock.Any(), matchBalanceUpdate(testWalletID, decimal.Zero, decimal.Zero, amount)).
		Return(testWallet(0), nil)
	s.m.transRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, args repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error) {
			s.Equal(domain.TransactionPayment, args.Type)
			s.Require().NotNil(args.ReferenceID)
			s.Equal(testBookingID, *args.ReferenceID)
			s.Equal(domain.ReferenceTypeBooking, *args.ReferenceType)
			return echoTransaction(3)(ctx, args)
		})
	s.m.artisanRepo.EXPECT().FindByID(gomock.Any(), testArtisanID).Return(testArtisan(domain.AvailabilityAvailable), nil)
	s.m.bookingRepo.EXPECT().
		TransitionStatus(gomock.Any(), repoargs.TransitionBooking{
			ID:   testBookingID,
			From: domain.BookingStatusPending,
			To:   domain.BookingStatusConfirmed,
		}).
		Return(withStatus(booking, domain.BookingStatusConfirmed), nil)
	s.m.timelineRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateTimelineEvent) (*domain.TimelineEvent, error) {
			s.Equal(domain.TimelineConfirmed, args.EventType)
			return &domain.TimelineEvent{ID: 1, BookingID: args.BookingID, EventType: args.EventType}, nil
		})

	// обе стороны получают уведомление, письмо уходит один раз
	s.m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.m.mailer.EXPECT().SendBookingEmail(gomock.Any(), testBookingID, gomock.Any(), gomock.Any()).Return(nil)
	s.m.publisher.EXPECT().Publish(gomock.Any(), domain.TopicWalletTransactions, gomock.Any(), gomock.Any())
	s.m.publisher.EXPECT().Publish(gomock.Any(), domain.TopicBookingStatusChanged, "100", gomock.Any())

	res, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, amount)
	s.Require().NoError(err)
	s.True(res.Balance.IsZero())
	s.Equal(domain.BookingStatusConfirmed, res.Booking.Status)
}

func (s *WalletServiceTestSuite) TestPayBookingSideEffectFailureDoesNotFail() {
	booking := testBooking(domain.BookingStatusPending, 300)

	s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).Return(booking, nil)
	s.expectNotPaid()
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(1000), nil)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(testWallet(700), nil)
	s.m.transRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoTransaction(4))
	s.m.artisanRepo.EXPECT().FindByID(gomock.Any(), testArtisanID).Return(testArtisan(domain.AvailabilityAvailable), nil)
	s.m.bookingRepo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).
		Return(withStatus(booking, domain.BookingStatusConfirmed), nil)
	s.m.timelineRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.TimelineEvent{}, nil)

	s.m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("db is down")).AnyTimes()
	s.m.mailer.EXPECT().SendBookingEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("redis is down"))
	s.m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("kafka is down")).AnyTimes()

	res, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, decimal.NewFromInt(300))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(700).Equal(res.Balance))
}

func (s *WalletServiceTestSuite) TestPayBookingRejected() {
	cases := []struct {
		name    string
		booking *domain.Booking
		findErr error
		userID  int64
		amount  decimal.Decimal
		wantErr error
	}{
		{
			name:    "not found",
			findErr: domain.ErrRecordNotFound,
			userID:  testCustomerUserID,
			amount:  decimal.NewFromInt(100),
			wantErr: domain.ErrBookingNotFound,
		},
		{
			name:    "foreign booking",
			booking: testBooking(domain.BookingStatusPending, 100),
			userID:  999,
			amount:  decimal.NewFromInt(100),
			wantErr: domain.ErrNotAuthorized,
		},
		{
			name:    "completed",
			booking: testBooking(domain.BookingStatusCompleted, 100),
			userID:  testCustomerUserID,
			amount:  decimal.NewFromInt(100),
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "cancelled",
			booking: testBooking(domain.BookingStatusCancelled, 100),
			userID:  testCustomerUserID,
			amount:  decimal.NewFromInt(100),
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "amount differs from booking total",
			booking: testBooking(domain.BookingStatusPending, 100),
			userID:  testCustomerUserID,
			amount:  decimal.NewFromInt(50),
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).Return(tc.booking, tc.findErr)
			s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), gomock.Any()).Times(0)

			_, err := s.service.PayBooking(context.Background(), tc.userID, testBookingID, tc.amount)
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *WalletServiceTestSuite) TestPayBookingConfirmedByArtisan() {
	booking := testBooking(domain.BookingStatusConfirmed, 10000)
	amount := decimal.NewFromInt(10000)

	s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).Return(booking, nil)
	s.expectNotPaid()
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(10000), nil)
	s.m.walletRepo.EXPECT().
		UpdateBalance(gomock.Any(), matchBalanceUpdate(testWalletID, decimal.Zero, decimal.Zero, amount)).
		Return(testWallet(0), nil)
	s.m.transRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoTransaction(5))

	// статус уже подтвержден, перехода и его побочных эффектов нет
	s.m.bookingRepo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).Times(0)
	s.m.timelineRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	s.m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
	s.m.publisher.EXPECT().Publish(gomock.Any(), domain.TopicWalletTransactions, gomock.Any(), gomock.Any())

	res, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, amount)
	s.Require().NoError(err)
	s.True(res.Balance.IsZero())
	s.Equal(domain.TransactionPayment, res.Transaction.Type)
	s.Equal(domain.BookingStatusConfirmed, res.Booking.Status)
}

func (s *WalletServiceTestSuite) TestPayBookingAlreadyPaid() {
	s.Run("from wallet", func() {
		s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).
			Return(testBooking(domain.BookingStatusConfirmed, 100), nil)
		s.m.transRepo.EXPECT().HasBookingPayment(gomock.Any(), testBookingID).Return(true, nil)
		s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, decimal.NewFromInt(100))
		s.ErrorIs(err, domain.ErrBookingAlreadyPaid)
	})

	s.Run("by card", func() {
		s.m.bookingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testBookingID).
			Return(testBooking(domain.BookingStatusConfirmed, 100), nil)
		s.m.transRepo.EXPECT().HasBookingPayment(gomock.Any(), testBookingID).Return(false, nil)
		s.m.paymentRepo.EXPECT().HasCompletedForBooking(gomock.Any(), testBookingID).Return(true, nil)
		s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, decimal.NewFromInt(100))
		s.ErrorIs(err, domain.ErrBookingAlreadyPaid)
	})
}

func (s *WalletServiceTestSuite) TestPayBookingInsufficientBalance() {
	s.m.bookingRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), testBookingID).
		Return(testBooking(domain.BookingStatusPending, 10000), nil)
	s.expectNotPaid()
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(5000), nil)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Times(0)
	s.m.bookingRepo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.PayBooking(context.Background(), testCustomerUserID, testBookingID, decimal.NewFromInt(10000))
	s.ErrorIs(err, domain.ErrInsufficientBalance)
}

func (s *WalletServiceTestSuite) TestSettleWithdrawalFailedRefunds() {
	withdrawal := &domain.WalletTransaction{
		ID:       55,
		WalletID: testWalletID,
		Type:     domain.TransactionWithdrawal,
		Amount:   decimal.NewFromInt(400),
		Status:   domain.TransactionStatusPending,
	}
	failed := *withdrawal
	failed.Status = domain.TransactionStatusFailed

	s.m.transRepo.EXPECT().FindByID(gomock.Any(), int64(55)).Return(withdrawal, nil)
	s.m.walletRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testWalletID).Return(testWallet(600), nil)
	s.m.transRepo.EXPECT().UpdatePendingStatus(gomock.Any(), int64(55), domain.TransactionStatusFailed).Return(&failed, nil)
	s.m.walletRepo.EXPECT().FindByUserIDForUpdate(gomock.Any(), testCustomerUserID).Return(testWallet(600), nil)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(testWallet(1000), nil)
	s.m.transRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, args repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error) {
			s.Equal(domain.TransactionRefund, args.Type)
			s.True(decimal.NewFromInt(1000).Equal(args.BalanceAfter))
			s.Equal(int64(55), *args.ReferenceID)
			return echoTransaction(56)(ctx, args)
		})
	s.m.publisher.EXPECT().Publish(gomock.Any(), domain.TopicWalletTransactions, gomock.Any(), gomock.Any())

	res, err := s.service.SettleWithdrawal(context.Background(), 55, domain.TransactionStatusFailed)
	s.Require().NoError(err)
	s.True(res.Changed)
	s.Require().NotNil(res.Refund)
	s.Equal(domain.TransactionStatusFailed, res.Withdrawal.Status)
}

func (s *WalletServiceTestSuite) TestSettleWithdrawalRepeated() {
	completed := &domain.WalletTransaction{
		ID:       55,
		WalletID: testWalletID,
		Type:     domain.TransactionWithdrawal,
		Amount:   decimal.NewFromInt(400),
		Status:   domain.TransactionStatusCompleted,
	}

	s.m.transRepo.EXPECT().FindByID(gomock.Any(), int64(55)).Return(completed, nil).Times(2)
	s.m.walletRepo.EXPECT().FindByIDForUpdate(gomock.Any(), testWalletID).Return(testWallet(600), nil)
	s.m.transRepo.EXPECT().
		UpdatePendingStatus(gomock.Any(), int64(55), domain.TransactionStatusCompleted).
		Return(nil, domain.ErrRecordNotFound)
	s.m.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Times(0)

	res, err := s.service.SettleWithdrawal(context.Background(), 55, domain.TransactionStatusCompleted)
	s.Require().NoError(err)
	s.False(res.Changed)
	s.Nil(res.Refund)
}

func (s *WalletServiceTestSuite) TestSettleWithdrawalInvalidStatus() {
	_, err := s.service.SettleWithdrawal(context.Background(), 55, domain.TransactionStatusPending)
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *WalletServiceTestSuite) TestListTransactionsCapsLimit() {
	s.m.walletRepo.EXPECT().FindByUserID(gomock.Any(), testCustomerUserID).Return(testWallet(0), nil)
	s.m.transRepo.EXPECT().
		List(gomock.Any(), testWalletID, repoargs.TransactionFilter{Limit: maxTransactionsLimit, Offset: 20}).
		Return([]domain.WalletTransaction{{ID: 1}}, nil)

	list, err := s.service.ListTransactions(context.Background(), testCustomerUserID, repoargs.TransactionFilter{
		Limit:  1000,
		Offset: 20,
	})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *WalletServiceTestSuite) TestGetWalletNotFound() {
	s.m.walletRepo.EXPECT().FindByUserID(gomock.Any(), testCustomerUserID).Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.GetWallet(context.Background(), testCustomerUserID)
	s.ErrorIs(err, domain.ErrWalletNotFound)
}

func TestWithdrawalDescription(t *testing.T) {
	cases := []struct {
		account string
		want    string
	}{
		{account: "0123456789", want: "Withdrawal to bank account ****6789"},
		{account: "12", want: "Withdrawal to bank account"},
		{account: "счёт №1234ё", want: "Withdrawal to bank account ****234ё"},
		{account: "ёёёё", want: "Withdrawal to bank account ****ёёёё"},
	}
	for _, tc := range cases {
		t.Run(tc.account, func(t *testing.T) {
			got := withdrawalDescription(tc.account)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
