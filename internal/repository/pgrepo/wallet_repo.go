package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, created_at, updated_at, user_id, balance, total_earned, total_spent`

type WalletRepository struct {
	conn uow.DBTX
}

func NewWalletRepository(conn uow.DBTX) *WalletRepository {
	return &WalletRepository{conn: conn}
}

// Ensure создает кошелек пользователя, если его еще нет, и возвращает его.
func (w *WalletRepository) Ensure(ctx context.Context, userID int64) (*domain.Wallet, error) {
	if _, err := w.conn.Exec(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID,
	); err != nil {
		return nil, convertErr(err, "ensuring wallet for userID %d", userID)
	}
	return w.FindByUserID(ctx, userID)
}

func (w *WalletRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "finding wallet by userID %d", userID)
	}
	return wallet, nil
}

// FindByUserIDForUpdate читает кошелек с блокировкой строки до конца транзакции.
func (w *WalletRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 FOR UPDATE`, userID)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "locking wallet by userID %d", userID)
	}
	return wallet, nil
}

func (w *WalletRepository) FindByIDForUpdate(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1 FOR UPDATE`, walletID)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "locking wallet with id %d", walletID)
	}
	return wallet, nil
}

func (w *WalletRepository) UpdateBalance(
	ctx context.Context,
	args repoargs.UpdateWalletBalance,
) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `
		UPDATE wallets
		SET balance      = $2,
		    total_earned = total_earned + $3,
		    total_spent  = total_spent + $4,
		    updated_at   = NOW()
		WHERE id = $1
		RETURNING `+walletColumns,
		args.WalletID, args.Balance, args.EarnedDelta, args.SpentDelta,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "updating balance of wallet %d", args.WalletID)
	}
	return wallet, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := row.Scan(
		&wallet.ID,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.TotalEarned,
		&wallet.TotalSpent,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &wallet, nil
}
