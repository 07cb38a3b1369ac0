package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/shopspring/decimal"
)

const (
	maxTransactionsLimit = 100

	referenceTypeWalletTransaction = "wallet_transaction"
)

type WalletService struct {
	uow        uow.UOW
	walletRepo WalletRepository
	transRepo  WalletTransactionRepository
	effects    *SideEffects
}

func NewWalletService(u uow.UOW, effects *SideEffects) (*WalletService, error) {
	walletRepo, err := uow.GetRepositoryAs[WalletRepository](u, repoargs.WalletRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transRepo, err := uow.GetRepositoryAs[WalletTransactionRepository](u, repoargs.WalletTransactionRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &WalletService{
		uow:        u,
		walletRepo: walletRepo,
		transRepo:  transRepo,
		effects:    effects,
	}, nil
}

// WalletOperationResult записанная транзакция и баланс кошелька после нее.
type WalletOperationResult struct {
	Transaction *domain.WalletTransaction
	Balance     decimal.Decimal
}

type PayBookingResult struct {
	WalletOperationResult
	Booking *domain.Booking
}

// EnsureWallet создает кошелек пользователя, если его еще нет.
func (w *WalletService) EnsureWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := w.walletRepo.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure wallet of user %d: %w", userID, err)
	}
	return wallet, nil
}

func (w *WalletService) GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := w.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrWalletNotFound)
	}
	return wallet, nil
}

// ListTransactions возвращает историю кошелька пользователя, новые записи первыми.
func (w *WalletService) ListTransactions(
	ctx context.Context,
	userID int64,
	filter repoargs.TransactionFilter,
) ([]domain.WalletTransaction, error) {
	wallet, err := w.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter.Limit == 0 || filter.Limit > maxTransactionsLimit {
		filter.Limit = maxTransactionsLimit
	}
	transactions, err := w.transRepo.List(ctx, wallet.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions of user %d: %w", userID, err)
	}
	return transactions, nil
}

// TopUp зачисляет amount на кошелек пользователя.
func (w *WalletService) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (*WalletOperationResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var res *WalletOperationResult
	err := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var opErr error
		res, opErr = w.mutateBalance(c, tx, userID, balanceMutation{
			txType:      domain.TransactionDeposit,
			status:      domain.TransactionStatusCompleted,
			amount:      amount,
			description: "Wallet top-up",
		})
		return opErr
	})
	metrics.RecordWalletOperation(string(domain.TransactionDeposit), err)
	if err != nil {
		return nil, fmt.Errorf("top up wallet of user %d: %w", userID, err)
	}

	w.publishTransaction(ctx, userID, res)
	return res, nil
}

// Withdraw списывает amount и создает вывод в статусе pending. Итог вывода фиксирует SettleWithdrawal.
func (w *WalletService) Withdraw(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
	bankAccount string,
) (*WalletOperationResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var res *WalletOperationResult
	err := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var opErr error
		res, opErr = w.mutateBalance(c, tx, userID, balanceMutation{
			txType:      domain.TransactionWithdrawal,
			status:      domain.TransactionStatusPending,
			amount:      amount,
			description: withdrawalDescription(bankAccount),
		})
		return opErr
	})
	metrics.RecordWalletOperation(string(domain.TransactionWithdrawal), err)
	if err != nil {
		return nil, fmt.Errorf("withdraw from wallet of user %d: %w", userID, err)
	}

	w.publishTransaction(ctx, userID, res)
	return res, nil
}

// PayBooking оплачивает бронирование из кошелька. Ожидающее оплаты бронирование подтверждается
// в той же транзакции, подтвержденное ремесленником остается в своем статусе.
// Сумма должна совпадать со стоимостью бронирования.
func (w *WalletService) PayBooking(
	ctx context.Context,
	userID, bookingID int64,
	amount decimal.Decimal,
) (*PayBookingResult, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var (
		res        *PayBookingResult
		transition *transitionResult
	)
	err := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, repoargs.BookingRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}
		artisanRepo, err := uow.GetAs[ArtisanRepository](tx, repoargs.ArtisanRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}

		// бронирование блокируется раньше кошелька
		booking, err := bookingRepo.FindByIDForUpdate(c, bookingID)
		if err != nil {
			return notFoundAs(err, domain.ErrBookingNotFound)
		}
		if booking.CustomerID != userID {
			return domain.ErrNotAuthorized
		}
		if !domain.AcceptsPayment(booking.Status) {
			return domain.NewInvalidTransitionError(booking.Status, domain.BookingStatusConfirmed)
		}
		if !amount.Equal(booking.TotalAmount) {
			return fmt.Errorf("%w: booking costs %s", domain.ErrInvalidAmount, booking.TotalAmount)
		}
		paid, err := bookingPaidInTx(c, tx, booking.ID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrBookingAlreadyPaid
		}

		refID, refType := bookingRef(booking.ID)
		op, err := w.mutateBalance(c, tx, userID, balanceMutation{
			txType:        domain.TransactionPayment,
			status:        domain.TransactionStatusCompleted,
			amount:        amount,
			description:   fmt.Sprintf("Payment for booking #%d", booking.ID),
			referenceID:   refID,
			referenceType: refType,
		})
		if err != nil {
			return err
		}
		res = &PayBookingResult{WalletOperationResult: *op, Booking: booking}

		if booking.Status != domain.BookingStatusPending {
			return nil
		}
		artisan, err := artisanRepo.FindByID(c, booking.ArtisanID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		transition, err = applyTransition(c, tx, booking, artisan.UserID, domain.BookingStatusConfirmed,
			domain.ActorPayment, transitionOptions{
				createdBy:   &userID,
				description: "Booking paid from wallet",
			})
		if err != nil {
			return err
		}
		res.Booking = transition.booking
		return nil
	})
	metrics.RecordWalletOperation(string(domain.TransactionPayment), err)
	if err != nil {
		return nil, fmt.Errorf("pay booking %d from wallet of user %d: %w", bookingID, userID, err)
	}

	w.publishTransaction(ctx, userID, &res.WalletOperationResult)
	if transition != nil {
		w.effects.bookingTransitioned(ctx, transition)
	}
	return res, nil
}

type SettleWithdrawalResult struct {
	Withdrawal *domain.WalletTransaction
	// Refund возврат средств на кошелек, если вывод не прошел.
	Refund  *domain.WalletTransaction
	Changed bool
}

// SettleWithdrawal фиксирует итог вывода средств. Неуспешный вывод возвращает сумму на кошелек.
// Повторный вызов с тем же статусом ничего не меняет.
func (w *WalletService) SettleWithdrawal(
	ctx context.Context,
	transactionID int64,
	status domain.TransactionStatus,
) (*SettleWithdrawalResult, error) {
	if status != domain.TransactionStatusCompleted && status != domain.TransactionStatusFailed {
		return nil, fmt.Errorf("%w: settlement status `%s`", domain.ErrInvalidInput, status)
	}

	var (
		res    *SettleWithdrawalResult
		userID int64
	)
	err := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		walletRepo, err := uow.GetAs[WalletRepository](tx, repoargs.WalletRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}
		transRepo, err := uow.GetAs[WalletTransactionRepository](tx, repoargs.WalletTransactionRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}

		withdrawal, err := transRepo.FindByID(c, transactionID)
		if err != nil {
			return notFoundAs(err, domain.ErrTransactionNotFound)
		}
		if withdrawal.Type != domain.TransactionWithdrawal {
			return fmt.Errorf("%w: transaction %d is a %s", domain.ErrInvalidInput, transactionID, withdrawal.Type)
		}

		wallet, err := walletRepo.FindByIDForUpdate(c, withdrawal.WalletID)
		if err != nil {
			return notFoundAs(err, domain.ErrWalletNotFound)
		}
		userID = wallet.UserID

		updated, err := transRepo.UpdatePendingStatus(c, transactionID, status)
		if errors.Is(err, domain.ErrRecordNotFound) {
			current, findErr := transRepo.FindByID(c, transactionID)
			if findErr != nil {
				return findErr //nolint:wrapcheck
			}
			if current.Status != status {
				return fmt.Errorf("%w: withdrawal %d is already %s", domain.ErrInvalidInput, transactionID, current.Status)
			}
			res = &SettleWithdrawalResult{Withdrawal: current}
			return nil
		}
		if err != nil {
			return err //nolint:wrapcheck
		}

		res = &SettleWithdrawalResult{Withdrawal: updated, Changed: true}
		if status == domain.TransactionStatusCompleted {
			return nil
		}

		refType := referenceTypeWalletTransaction
		refund, err := w.mutateBalance(c, tx, wallet.UserID, balanceMutation{
			txType:        domain.TransactionRefund,
			status:        domain.TransactionStatusCompleted,
			amount:        withdrawal.Amount,
			description:   fmt.Sprintf("Refund of failed withdrawal #%d", withdrawal.ID),
			referenceID:   &withdrawal.ID,
			referenceType: &refType,
		})
		if err != nil {
			return err
		}
		res.Refund = refund.Transaction
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("settle withdrawal %d: %w", transactionID, err)
	}

	if res.Refund != nil {
		metrics.RecordWalletOperation(string(domain.TransactionRefund), nil)
		w.publishTransaction(ctx, userID, &WalletOperationResult{Transaction: res.Refund, Balance: res.Refund.BalanceAfter})
	}
	return res, nil
}

type balanceMutation struct {
	txType        domain.TransactionType
	status        domain.TransactionStatus
	amount        decimal.Decimal
	description   string
	referenceID   *int64
	referenceType *string
}

// mutateBalance блокирует кошелек пользователя, меняет баланс и пишет запись в журнал.
// Вызывается только внутри транзакции uow.
func (w *WalletService) mutateBalance(
	ctx context.Context,
	tx uow.TX,
	userID int64,
	m balanceMutation,
) (*WalletOperationResult, error) {
	walletRepo, err := uow.GetAs[WalletRepository](tx, repoargs.WalletRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transRepo, err := uow.GetAs[WalletTransactionRepository](tx, repoargs.WalletTransactionRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	wallet, err := walletRepo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrWalletNotFound)
	}

	newBalance, err := domain.ApplyTransaction(wallet.Balance, m.amount, m.txType)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	update := repoargs.UpdateWalletBalance{
		WalletID:    wallet.ID,
		Balance:     newBalance,
		EarnedDelta: decimal.Zero,
		SpentDelta:  decimal.Zero,
	}
	switch m.txType {
	case domain.TransactionEarning:
		update.EarnedDelta = m.amount
	case domain.TransactionPayment:
		update.SpentDelta = m.amount
	}
	if _, err = walletRepo.UpdateBalance(ctx, update); err != nil {
		return nil, err //nolint:wrapcheck
	}

	trans, err := transRepo.Create(ctx, repoargs.CreateWalletTransaction{
		WalletID:      wallet.ID,
		Type:          m.txType,
		Amount:        m.amount,
		Description:   m.description,
		ReferenceID:   m.referenceID,
		ReferenceType: m.referenceType,
		Status:        m.status,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  newBalance,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &WalletOperationResult{Transaction: trans, Balance: newBalance}, nil
}

func (w *WalletService) publishTransaction(ctx context.Context, userID int64, res *WalletOperationResult) {
	t := res.Transaction
	w.effects.publish(ctx, domain.TopicWalletTransactions, t.WalletID, domain.WalletTransactionEvent{
		TransactionID: t.ID,
		WalletID:      t.WalletID,
		UserID:        userID,
		Type:          t.Type,
		Status:        t.Status,
		Amount:        t.Amount,
		BalanceAfter:  res.Balance,
		OccurredAt:    time.Now().UTC(),
	})
}

func withdrawalDescription(bankAccount string) string {
	account := []rune(bankAccount)
	if len(account) < 4 {
		return "Withdrawal to bank account"
	}
	return "Withdrawal to bank account ****" + string(account[len(account)-4:])
}
