package pgrepo

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

type NotificationRepository struct {
	conn uow.DBTX
}

func NewNotificationRepository(conn uow.DBTX) *NotificationRepository {
	return &NotificationRepository{conn: conn}
}

func (n *NotificationRepository) Create(ctx context.Context, notification domain.Notification) error {
	_, err := n.conn.Exec(ctx, `
		INSERT INTO notifications (user_id, type, title, message, reference_id, reference_type)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		notification.UserID,
		string(notification.Type),
		notification.Title,
		notification.Message,
		notification.ReferenceID,
		notification.ReferenceType,
	)
	if err != nil {
		return convertErr(err, "creating notification for user %d", notification.UserID)
	}
	return nil
}
