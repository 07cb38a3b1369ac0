// Package notify доставляет уведомления и письма участникам бронирований.
package notify

import (
	"context"
	"fmt"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

// Notifier сохраняет уведомления в таблицу notifications.
type Notifier struct {
	repo NotificationRepository
}

func NewNotifier(u uow.UOW) (*Notifier, error) {
	repo, err := uow.GetRepositoryAs[NotificationRepository](u, repoargs.NotificationRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &Notifier{repo: repo}, nil
}

func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	if err := n.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("notify user %d: %w", notification.UserID, err)
	}
	return nil
}
