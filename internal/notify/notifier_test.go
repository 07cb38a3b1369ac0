package notify

import (
	"context"
	"testing"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/notify/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	n := &Notifier{repo: repo}

	notification := domain.Notification{
		UserID:  20,
		Type:    domain.NotificationBooking,
		Title:   "New booking request",
		Message: "You have a new booking request.",
	}

	repo.EXPECT().Create(gomock.Any(), notification).Return(nil)
	assert.NoError(t, n.Notify(context.Background(), notification))

	repo.EXPECT().Create(gomock.Any(), notification).Return(domain.ErrUnknown)
	assert.ErrorIs(t, n.Notify(context.Background(), notification), domain.ErrUnknown)
}
