package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	svs WalletServicer
}

func NewWalletHandler(svs WalletServicer) *WalletHandler {
	return &WalletHandler{
		svs: svs,
	}
}

type WalletResponse struct {
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type TransactionResponse struct {
	ID            int64                    `json:"id"`
	Type          domain.TransactionType   `json:"type"`
	Amount        decimal.Decimal          `json:"amount"`
	Description   string                   `json:"description"`
	Status        domain.TransactionStatus `json:"status"`
	BalanceBefore decimal.Decimal          `json:"balance_before"`
	BalanceAfter  decimal.Decimal          `json:"balance_after"`
	ReferenceID   *int64                   `json:"reference_id,omitempty"`
	ReferenceType *string                  `json:"reference_type,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func newTransactionResponse(t *domain.WalletTransaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		Status:        t.Status,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		ReferenceID:   t.ReferenceID,
		ReferenceType: t.ReferenceType,
		CreatedAt:     t.CreatedAt,
	}
}

type OperationResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal      `json:"balance"`
}

func newOperationResponse(res *service.WalletOperationResult) OperationResponse {
	return OperationResponse{
		Transaction: newTransactionResponse(res.Transaction),
		Balance:     res.Balance,
	}
}

// Balance GET RouteGroup + WalletBalanceRoute.
func (w *WalletHandler) Balance(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := w.svs.GetWallet(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &WalletResponse{
		Balance:     wallet.Balance,
		TotalEarned: wallet.TotalEarned,
		TotalSpent:  wallet.TotalSpent,
		UpdatedAt:   wallet.UpdatedAt,
	})
}

type TransactionsParams struct {
	Type   string `form:"type" binding:"omitempty,oneof=deposit withdrawal payment earning refund"`
	Status string `form:"status" binding:"omitempty,oneof=pending completed failed"`
	Limit  uint   `form:"limit" binding:"omitempty,max=100"`
	Offset uint   `form:"offset"`
}

func (p TransactionsParams) filter() repoargs.TransactionFilter {
	f := repoargs.TransactionFilter{Limit: p.Limit, Offset: p.Offset}
	if p.Type != "" {
		t := domain.TransactionType(p.Type)
		f.Type = &t
	}
	if p.Status != "" {
		s := domain.TransactionStatus(p.Status)
		f.Status = &s
	}
	return f
}

// Transactions GET RouteGroup + WalletTransactionsRoute.
func (w *WalletHandler) Transactions(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params TransactionsParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := w.svs.ListTransactions(reqCtx, currentUserID, params.filter())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]*TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = newTransactionResponse(&transactions[i])
	}
	c.JSON(http.StatusOK, response)
}

type TopUpParams struct {
	Amount decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}

// TopUp POST RouteGroup + WalletTopUpRoute.
func (w *WalletHandler) TopUp(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params TopUpParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := w.svs.TopUp(reqCtx, currentUserID, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOperationResponse(res))
}

type WithdrawParams struct {
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	BankAccount string          `json:"bank_account" binding:"required,max_bytes=100"`
}

// Withdraw POST RouteGroup + WalletWithdrawRoute. Вывод создается в статусе pending.
func (w *WalletHandler) Withdraw(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params WithdrawParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := w.svs.Withdraw(reqCtx, currentUserID, params.Amount, params.BankAccount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, newOperationResponse(res))
}

type PayBookingParams struct {
	BookingID int64           `json:"booking_id" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}

type PayBookingResponse struct {
	OperationResponse
	Booking *BookingResponse `json:"booking"`
}

// PayBooking POST RouteGroup + WalletPayBookingRoute.
func (w *WalletHandler) PayBooking(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params PayBookingParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := w.svs.PayBooking(reqCtx, currentUserID, params.BookingID, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &PayBookingResponse{
		OperationResponse: newOperationResponse(&res.WalletOperationResult),
		Booking:           newBookingResponse(res.Booking),
	})
}

type SettleWithdrawalParams struct {
	Status string `json:"status" binding:"required,oneof=completed failed"`
}

type SettleWithdrawalResponse struct {
	Withdrawal *TransactionResponse `json:"withdrawal"`
	Refund     *TransactionResponse `json:"refund,omitempty"`
	Changed    bool                 `json:"changed"`
}

// SettleWithdrawal POST RouteGroup + WalletSettleRoute. Фиксирует итог вывода средств.
func (w *WalletHandler) SettleWithdrawal(c *gin.Context) {
	transactionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params SettleWithdrawalParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := w.svs.SettleWithdrawal(reqCtx, transactionID, domain.TransactionStatus(params.Status))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &SettleWithdrawalResponse{
		Withdrawal: newTransactionResponse(res.Withdrawal),
		Refund:     newTransactionResponse(res.Refund),
		Changed:    res.Changed,
	})
}
