package pgrepo

import (
	"context"
	"errors"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, created_at, updated_at, booking_id, amount, payment_method, transaction_id, status`

type PaymentRepository struct {
	conn uow.DBTX
}

func NewPaymentRepository(conn uow.DBTX) *PaymentRepository {
	return &PaymentRepository{conn: conn}
}

func (p *PaymentRepository) Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx, `
		INSERT INTO payments (booking_id, amount, payment_method, transaction_id, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING `+paymentColumns,
		args.BookingID, args.Amount, args.PaymentMethod, args.Reference,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "creating payment `%s` for booking %d", args.Reference, args.BookingID)
	}
	return payment, nil
}

func (p *PaymentRepository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, reference)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "finding payment by reference `%s`", reference)
	}
	return payment, nil
}

// FindByReferenceForUpdate читает платеж с блокировкой строки до конца транзакции.
func (p *PaymentRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1 FOR UPDATE`, reference,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "locking payment by reference `%s`", reference)
	}
	return payment, nil
}

func (p *PaymentRepository) HasCompletedForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var exists bool
	err := p.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE booking_id = $1 AND status = 'completed')`, bookingID,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking completed payments of booking %d", bookingID)
	}
	return exists, nil
}

// MarkCompleted переводит платеж в completed. changed == false, если платеж уже был завершен.
func (p *PaymentRepository) MarkCompleted(
	ctx context.Context,
	reference string,
) (payment *domain.Payment, changed bool, err error) {
	row := p.conn.QueryRow(ctx, `
		UPDATE payments
		SET status = 'completed', updated_at = NOW()
		WHERE transaction_id = $1 AND status <> 'completed'
		RETURNING `+paymentColumns,
		reference,
	)
	payment, err = scanPayment(row)
	if err == nil {
		return payment, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, convertErr(err, "completing payment `%s`", reference)
	}

	payment, err = p.FindByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return payment, false, nil
}

// MarkFailed переводит в failed только платеж в статусе pending.
func (p *PaymentRepository) MarkFailed(ctx context.Context, reference string) (bool, error) {
	tag, err := p.conn.Exec(ctx, `
		UPDATE payments
		SET status = 'failed', updated_at = NOW()
		WHERE transaction_id = $1 AND status = 'pending'`, reference,
	)
	if err != nil {
		return false, convertErr(err, "failing payment `%s`", reference)
	}
	return tag.RowsAffected() > 0, nil
}

// GetPendingForReconciliation возвращает платежи, зависшие в pending дольше olderThan, старые первыми.
func (p *PaymentRepository) GetPendingForReconciliation(
	ctx context.Context,
	olderThan time.Duration,
	limit uint,
) ([]domain.Payment, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2`,
		time.Now().Add(-olderThan), int64(limit), //nolint:gosec
	)
	if err != nil {
		return nil, convertErr(err, "getting pending payments for reconciliation")
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning pending payment")
		}
		payments = append(payments, *payment)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "getting pending payments for reconciliation")
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	if err := row.Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.BookingID,
		&p.Amount,
		&p.PaymentMethod,
		&p.Reference,
		&status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
