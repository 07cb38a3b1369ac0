package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		actor   ActorType
		wantErr error
	}{
		{name: "artisan confirms", from: BookingStatusPending, to: BookingStatusConfirmed, actor: ActorArtisan},
		{name: "payment confirms", from: BookingStatusPending, to: BookingStatusConfirmed, actor: ActorPayment},
		{name: "artisan starts", from: BookingStatusConfirmed, to: BookingStatusInProgress, actor: ActorArtisan},
		{name: "artisan completes", from: BookingStatusInProgress, to: BookingStatusCompleted, actor: ActorArtisan},
		{name: "customer cancels pending", from: BookingStatusPending, to: BookingStatusCancelled, actor: ActorCustomer},
		{name: "customer cancels confirmed", from: BookingStatusConfirmed, to: BookingStatusCancelled, actor: ActorCustomer},
		{
			name: "customer cannot confirm", from: BookingStatusPending, to: BookingStatusConfirmed,
			actor: ActorCustomer, wantErr: ErrNotAuthorized,
		},
		{
			name: "artisan cannot cancel", from: BookingStatusConfirmed, to: BookingStatusCancelled,
			actor: ActorArtisan, wantErr: ErrNotAuthorized,
		},
		{
			name: "in progress back to pending", from: BookingStatusInProgress, to: BookingStatusPending,
			actor: ActorArtisan, wantErr: ErrInvalidTransition,
		},
		{
			name: "cancel in progress", from: BookingStatusInProgress, to: BookingStatusCancelled,
			actor: ActorCustomer, wantErr: ErrInvalidTransition,
		},
		{
			name: "confirm cancelled", from: BookingStatusCancelled, to: BookingStatusConfirmed,
			actor: ActorArtisan, wantErr: ErrInvalidTransition,
		},
		{
			name: "skip to completed", from: BookingStatusPending, to: BookingStatusCompleted,
			actor: ActorArtisan, wantErr: ErrInvalidTransition,
		},
		{
			name: "re-confirm", from: BookingStatusConfirmed, to: BookingStatusConfirmed,
			actor: ActorPayment, wantErr: ErrInvalidTransition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to, tc.actor)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := ValidateTransition(BookingStatusInProgress, BookingStatusPending, ActorArtisan)

	var transitionErr *InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, BookingStatusInProgress, transitionErr.From)
	assert.Equal(t, BookingStatusPending, transitionErr.To)
}

func TestApplyTransaction(t *testing.T) {
	cases := []struct {
		name    string
		balance decimal.Decimal
		amount  decimal.Decimal
		txType  TransactionType
		want    decimal.Decimal
		wantErr error
	}{
		{
			name: "deposit", balance: decimal.NewFromInt(500), amount: decimal.NewFromInt(250),
			txType: TransactionDeposit, want: decimal.NewFromInt(750),
		},
		{
			name: "payment drains balance", balance: decimal.NewFromInt(10000), amount: decimal.NewFromInt(10000),
			txType: TransactionPayment, want: decimal.Zero,
		},
		{
			name: "withdrawal over balance", balance: decimal.NewFromInt(500), amount: decimal.NewFromInt(1000),
			txType: TransactionWithdrawal, wantErr: ErrInsufficientBalance,
		},
		{
			name: "refund", balance: decimal.Zero, amount: decimal.RequireFromString("99.99"),
			txType: TransactionRefund, want: decimal.RequireFromString("99.99"),
		},
		{
			name: "zero amount", balance: decimal.NewFromInt(10), amount: decimal.Zero,
			txType: TransactionDeposit, wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount", balance: decimal.NewFromInt(10), amount: decimal.NewFromInt(-5),
			txType: TransactionPayment, wantErr: ErrInvalidAmount,
		},
		{
			name: "sub-unit amount", balance: decimal.NewFromInt(500), amount: decimal.RequireFromString("0.005"),
			txType: TransactionDeposit, wantErr: ErrInvalidAmount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ApplyTransaction(tc.balance, tc.amount, tc.txType)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, tc.balance.Equal(got), "balance must stay unchanged on error")
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestValidateAmount(t *testing.T) {
	valid := []string{"0.01", "1", "250.75", "10.50", "10.500", "999999999999.99"}
	for _, v := range valid {
		assert.NoError(t, ValidateAmount(decimal.RequireFromString(v)), v)
	}

	invalid := []string{"0", "-1", "0.001", "0.009", "10.005", "-0.01"}
	for _, v := range invalid {
		assert.ErrorIs(t, ValidateAmount(decimal.RequireFromString(v)), ErrInvalidAmount, v)
	}
}

func TestAcceptsPayment(t *testing.T) {
	assert.True(t, AcceptsPayment(BookingStatusPending))
	assert.True(t, AcceptsPayment(BookingStatusConfirmed))
	assert.False(t, AcceptsPayment(BookingStatusInProgress))
	assert.False(t, AcceptsPayment(BookingStatusCompleted))
	assert.False(t, AcceptsPayment(BookingStatusCancelled))
}
