package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	svs PaymentServicer
}

func NewPaymentHandler(svs PaymentServicer) *PaymentHandler {
	return &PaymentHandler{
		svs: svs,
	}
}

type InitializePaymentParams struct {
	BookingID int64 `json:"booking_id" binding:"required,gt=0"`
}

type InitializePaymentResponse struct {
	AuthorizationURL string          `json:"authorization_url"`
	AccessCode       string          `json:"access_code"`
	Reference        string          `json:"reference"`
	Amount           decimal.Decimal `json:"amount"`
}

// Initialize POST RouteGroup + PaymentInitRoute.
func (p *PaymentHandler) Initialize(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params InitializePaymentParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, GatewayServiceTimeout)
	defer cancel()

	res, err := p.svs.Initialize(reqCtx, currentUserID, params.BookingID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &InitializePaymentResponse{
		AuthorizationURL: res.AuthorizationURL,
		AccessCode:       res.AccessCode,
		Reference:        res.Reference,
		Amount:           res.Amount,
	})
}

type PaymentResponse struct {
	ID        int64                `json:"id"`
	BookingID int64                `json:"booking_id"`
	Amount    decimal.Decimal      `json:"amount"`
	Method    string               `json:"payment_method"`
	Reference string               `json:"reference"`
	Status    domain.PaymentStatus `json:"status"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type VerifyPaymentResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Booking *BookingResponse `json:"booking"`
}

// Verify POST RouteGroup + PaymentVerifyRoute. Повторная проверка уже подтвержденного платежа
// возвращает тот же результат.
func (p *PaymentHandler) Verify(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	reference := c.Param("reference")

	reqCtx, cancel := context.WithTimeout(c, GatewayServiceTimeout)
	defer cancel()

	res, err := p.svs.Verify(reqCtx, currentUserID, reference)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := VerifyPaymentResponse{Booking: newBookingResponse(res.Booking)}
	if res.Payment != nil {
		response.Payment = &PaymentResponse{
			ID:        res.Payment.ID,
			BookingID: res.Payment.BookingID,
			Amount:    res.Payment.Amount,
			Method:    res.Payment.PaymentMethod,
			Reference: res.Payment.Reference,
			Status:    res.Payment.Status,
			UpdatedAt: res.Payment.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

// Webhook POST RouteGroup + PaymentWebhookRoute. Подпись проверяется по сырому телу запроса.
func (p *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePrivate)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if hookErr := p.svs.HandleWebhook(reqCtx, c.GetHeader(PaystackSignatureName), body); hookErr != nil {
		abortWithServiceError(c, hookErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
