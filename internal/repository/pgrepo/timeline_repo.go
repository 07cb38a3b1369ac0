package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const timelineColumns = `id, created_at, booking_id, event_type, description, created_by`

type TimelineRepository struct {
	conn uow.DBTX
}

func NewTimelineRepository(conn uow.DBTX) *TimelineRepository {
	return &TimelineRepository{conn: conn}
}

func (t *TimelineRepository) Create(
	ctx context.Context,
	args repoargs.CreateTimelineEvent,
) (*domain.TimelineEvent, error) {
	row := t.conn.QueryRow(ctx, `
		INSERT INTO booking_timeline (booking_id, event_type, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+timelineColumns,
		args.BookingID, string(args.EventType), args.Description, args.CreatedBy,
	)
	event, err := scanTimelineEvent(row)
	if err != nil {
		return nil, convertErr(err, "creating `%s` timeline event for booking %d", args.EventType, args.BookingID)
	}
	return event, nil
}

// ListByBooking возвращает события бронирования в хронологическом порядке.
func (t *TimelineRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.TimelineEvent, error) {
	rows, err := t.conn.Query(ctx,
		`SELECT `+timelineColumns+` FROM booking_timeline WHERE booking_id = $1 ORDER BY created_at, id`,
		bookingID,
	)
	if err != nil {
		return nil, convertErr(err, "listing timeline of booking %d", bookingID)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		event, scanErr := scanTimelineEvent(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning timeline of booking %d", bookingID)
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "listing timeline of booking %d", bookingID)
	}
	return events, nil
}

func scanTimelineEvent(row pgx.Row) (*domain.TimelineEvent, error) {
	var (
		e         domain.TimelineEvent
		eventType string
	)
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.BookingID, &eventType, &e.Description, &e.CreatedBy); err != nil {
		return nil, err //nolint:wrapcheck
	}
	e.EventType = domain.TimelineEventType(eventType)
	return &e, nil
}
