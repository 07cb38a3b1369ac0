package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, created_at, updated_at, customer_id, artisan_id, service_id, booking_date,
	booking_time::text, location_address, latitude, longitude, total_amount, status, notes, completion_notes,
	estimated_arrival_time, actual_arrival_time`

type BookingRepository struct {
	conn uow.DBTX
}

func NewBookingRepository(conn uow.DBTX) *BookingRepository {
	return &BookingRepository{conn: conn}
}

func (b *BookingRepository) Create(ctx context.Context, args repoargs.CreateBooking) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `
		INSERT INTO bookings (customer_id, artisan_id, service_id, booking_date, booking_time, location_address,
		                      latitude, longitude, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5::text::time, $6, $7, $8, $9, 'pending', $10)
		RETURNING `+bookingColumns,
		args.CustomerID,
		args.ArtisanID,
		args.ServiceID,
		args.BookingDate,
		args.BookingTime,
		args.LocationAddress,
		args.Latitude,
		args.Longitude,
		args.TotalAmount,
		args.Notes,
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "creating booking for customer %d", args.CustomerID)
	}
	return booking, nil
}

func (b *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "finding booking with id %d", id)
	}
	return booking, nil
}

// FindByIDForUpdate читает бронирование с блокировкой строки до конца транзакции.
func (b *BookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "locking booking with id %d", id)
	}
	return booking, nil
}

// TransitionStatus меняет статус только если текущий статус равен args.From. Если строка не изменилась,
// возвращает ErrRecordNotFound: бронирования нет или его статус уже другой.
func (b *BookingRepository) TransitionStatus(
	ctx context.Context,
	args repoargs.TransitionBooking,
) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `
		UPDATE bookings
		SET status              = $3,
		    completion_notes    = COALESCE($4, completion_notes),
		    actual_arrival_time = CASE WHEN $5::boolean THEN NOW() ELSE actual_arrival_time END,
		    updated_at          = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+bookingColumns,
		args.ID,
		string(args.From),
		string(args.To),
		args.CompletionNotes,
		args.MarkArrived,
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "moving booking %d from `%s` to `%s`", args.ID, args.From, args.To)
	}
	return booking, nil
}

func (b *BookingRepository) SetETA(ctx context.Context, id int64, eta time.Time) (*domain.Booking, error) {
	row := b.conn.QueryRow(ctx, `
		UPDATE bookings
		SET estimated_arrival_time = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookingColumns,
		id, eta,
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, convertErr(err, "setting eta of booking %d", id)
	}
	return booking, nil
}

// FindContacts возвращает данные обеих сторон бронирования для писем и уведомлений.
func (b *BookingRepository) FindContacts(ctx context.Context, id int64) (*domain.BookingContacts, error) {
	var c domain.BookingContacts
	err := b.conn.QueryRow(ctx, `
		SELECT b.id, s.name, b.booking_date, b.booking_time::text, b.location_address, b.total_amount,
		       cu.email, cu.first_name, au.email, au.first_name, cu.id, au.id
		FROM bookings b
		         JOIN services s ON s.id = b.service_id
		         JOIN users cu ON cu.id = b.customer_id
		         JOIN artisan_profiles ap ON ap.id = b.artisan_id
		         JOIN users au ON au.id = ap.user_id
		WHERE b.id = $1`, id,
	).Scan(
		&c.BookingID,
		&c.ServiceName,
		&c.BookingDate,
		&c.BookingTime,
		&c.LocationAddress,
		&c.TotalAmount,
		&c.CustomerEmail,
		&c.CustomerFirstName,
		&c.ArtisanEmail,
		&c.ArtisanFirstName,
		&c.CustomerUserID,
		&c.ArtisanUserID,
	)
	if err != nil {
		return nil, convertErr(err, "finding contacts of booking %d", id)
	}
	return &c, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)
	if err := row.Scan(
		&b.ID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.CustomerID,
		&b.ArtisanID,
		&b.ServiceID,
		&b.BookingDate,
		&b.BookingTime,
		&b.LocationAddress,
		&b.Latitude,
		&b.Longitude,
		&b.TotalAmount,
		&status,
		&b.Notes,
		&b.CompletionNotes,
		&b.EstimatedArrivalTime,
		&b.ActualArrivalTime,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}
