package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const walletTransactionColumns = `id, created_at, updated_at, wallet_id, type, amount, description,
	reference_id, reference_type, status, balance_before, balance_after`

const defaultTransactionsLimit = 50

type WalletTransactionRepository struct {
	conn uow.DBTX
}

func NewWalletTransactionRepository(conn uow.DBTX) *WalletTransactionRepository {
	return &WalletTransactionRepository{conn: conn}
}

func (r *WalletTransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateWalletTransaction,
) (*domain.WalletTransaction, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO wallet_transactions (wallet_id, type, amount, description, reference_id, reference_type,
		                                 status, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+walletTransactionColumns,
		args.WalletID,
		string(args.Type),
		args.Amount,
		args.Description,
		args.ReferenceID,
		args.ReferenceType,
		string(args.Status),
		args.BalanceBefore,
		args.BalanceAfter,
	)
	trans, err := scanWalletTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for wallet %d", args.Type, args.WalletID)
	}
	return trans, nil
}

func (r *WalletTransactionRepository) FindByID(ctx context.Context, id int64) (*domain.WalletTransaction, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+walletTransactionColumns+` FROM wallet_transactions WHERE id = $1`, id)
	trans, err := scanWalletTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding wallet transaction with id %d", id)
	}
	return trans, nil
}

// HasBookingPayment сообщает, есть ли завершенная оплата бронирования из кошелька.
func (r *WalletTransactionRepository) HasBookingPayment(ctx context.Context, bookingID int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM wallet_transactions
			WHERE type = $1 AND status = $2 AND reference_type = $3 AND reference_id = $4
		)`,
		string(domain.TransactionPayment),
		string(domain.TransactionStatusCompleted),
		domain.ReferenceTypeBooking,
		bookingID,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking wallet payments of booking %d", bookingID)
	}
	return exists, nil
}

// UpdatePendingStatus переводит транзакцию из pending в status. Если транзакция уже не в pending,
// возвращает ErrRecordNotFound.
func (r *WalletTransactionRepository) UpdatePendingStatus(
	ctx context.Context,
	id int64,
	status domain.TransactionStatus,
) (*domain.WalletTransaction, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE wallet_transactions
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+walletTransactionColumns,
		id, string(status),
	)
	trans, err := scanWalletTransaction(row)
	if err != nil {
		return nil, convertErr(err, "updating status of pending wallet transaction %d", id)
	}
	return trans, nil
}

// List возвращает транзакции кошелька, отсортированные по дате создания по убыванию.
func (r *WalletTransactionRepository) List(
	ctx context.Context,
	walletID int64,
	filter repoargs.TransactionFilter,
) ([]domain.WalletTransaction, error) {
	conds := []string{"wallet_id = $1"}
	args := []any{walletID}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	limit := filter.Limit
	if limit == 0 {
		limit = defaultTransactionsLimit
	}
	args = append(args, int64(limit), int64(filter.Offset)) //nolint:gosec

	query := fmt.Sprintf(
		`SELECT %s FROM wallet_transactions WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		walletTransactionColumns, strings.Join(conds, " AND "), len(args)-1, len(args),
	)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "listing transactions of wallet %d", walletID)
	}
	defer rows.Close()

	var transactions []domain.WalletTransaction
	for rows.Next() {
		trans, scanErr := scanWalletTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning transaction of wallet %d", walletID)
		}
		transactions = append(transactions, *trans)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "listing transactions of wallet %d", walletID)
	}
	return transactions, nil
}

func scanWalletTransaction(row pgx.Row) (*domain.WalletTransaction, error) {
	var (
		t       domain.WalletTransaction
		tType   string
		tStatus string
	)
	if err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.WalletID,
		&tType,
		&t.Amount,
		&t.Description,
		&t.ReferenceID,
		&t.ReferenceType,
		&tStatus,
		&t.BalanceBefore,
		&t.BalanceAfter,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	t.Type = domain.TransactionType(tType)
	t.Status = domain.TransactionStatus(tStatus)
	return &t, nil
}
