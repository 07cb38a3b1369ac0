package paystack

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
)

type Servicer interface {
	PendingForReconciliation(ctx context.Context, olderThan time.Duration, limit uint) ([]domain.Payment, error)
	Reconcile(ctx context.Context, payment domain.Payment) error
}
