package domain

import "github.com/shopspring/decimal"

// MoneyScale число знаков после запятой в денежных колонках.
const MoneyScale = 2

// ValidateAmount проверяет, что сумма положительна и не содержит долей мельче MoneyScale знаков.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(MoneyScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyTransaction вычисляет баланс после транзакции типа t на сумму amount.
// Для дебетовых типов возвращает ErrInsufficientBalance, если баланс уйдет в минус.
func ApplyTransaction(balance, amount decimal.Decimal, t TransactionType) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return balance, err
	}
	if t.IsCredit() {
		return balance.Add(amount), nil
	}
	if balance.LessThan(amount) {
		return balance, ErrInsufficientBalance
	}
	return balance.Sub(amount), nil
}
