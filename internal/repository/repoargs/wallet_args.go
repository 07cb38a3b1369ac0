package repoargs

import (
	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/shopspring/decimal"
)

// UpdateWalletBalance новое значение баланса и приращения агрегатов кошелька.
type UpdateWalletBalance struct {
	WalletID    int64
	Balance     decimal.Decimal
	EarnedDelta decimal.Decimal
	SpentDelta  decimal.Decimal
}

type CreateWalletTransaction struct {
	WalletID      int64
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Description   string
	ReferenceID   *int64
	ReferenceType *string
	Status        domain.TransactionStatus
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// TransactionFilter фильтр выборки истории кошелька. Пустые поля не ограничивают выборку.
type TransactionFilter struct {
	Type   *domain.TransactionType
	Status *domain.TransactionStatus
	Limit  uint
	Offset uint
}
