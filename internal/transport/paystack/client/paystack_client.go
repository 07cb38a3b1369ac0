// Package client HTTP клиент платежного шлюза Paystack.
package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	RouteInitialize = "/transaction/initialize"
	RouteVerify     = "/transaction/verify/%s"
)

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter = 1
	maxRetryAfter = 120
)

const defaultHTTPTimeout = 15 * time.Second

// koboPerNaira суммы в API Paystack передаются в минимальных единицах валюты.
var koboPerNaira = decimal.NewFromInt(100)

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeRequest struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

type webhookPayload struct {
	Event string          `json:"event"`
	Data  transactionData `json:"data"`
}

// HTTPClient реализация платежного шлюза поверх REST API Paystack.
type HTTPClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func New(baseURL, secretKey string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Initialize создает транзакцию в Paystack и возвращает ссылку на страницу оплаты.
func (c HTTPClient) Initialize(
	ctx context.Context,
	email string,
	amount decimal.Decimal,
	reference string,
	bookingID int64,
) (*domain.GatewayCheckout, error) {
	body, err := json.Marshal(initializeRequest{
		Email:     email,
		Amount:    ToKobo(amount),
		Reference: reference,
		Metadata:  map[string]string{"booking_id": fmt.Sprintf("%d", bookingID)},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %s", err.Error())
	}

	var resp envelope[initializeData]
	if err = c.do(ctx, http.MethodPost, RouteInitialize, body, &resp); err != nil {
		return nil, err
	}

	return &domain.GatewayCheckout{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// Verify запрашивает текущий статус транзакции. При ответе сервера со статусом отличным от http.StatusOK
// возвращает StatusCodeError, или TooManyRequestError в случае http.StatusTooManyRequests.
func (c HTTPClient) Verify(ctx context.Context, reference string) (*domain.GatewayVerification, error) {
	var resp envelope[transactionData]
	route := fmt.Sprintf(RouteVerify, url.PathEscape(reference))
	if err := c.do(ctx, http.MethodGet, route, nil, &resp); err != nil {
		return nil, err
	}
	return toVerification(resp.Data), nil
}

// ParseWebhook проверяет подпись x-paystack-signature (HMAC-SHA512 тела на секретном ключе)
// и только после этого разбирает тело.
func (c HTTPClient) ParseWebhook(signature string, body []byte) (*domain.GatewayEvent, error) {
	if !c.validSignature(signature, body) {
		return nil, domain.ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse webhook: %s", domain.ErrInvalidInput, err.Error())
	}
	return &domain.GatewayEvent{
		Event:       payload.Event,
		Transaction: *toVerification(payload.Data),
	}, nil
}

// Sign подпись тела вебхука секретным ключом.
func Sign(secretKey string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c HTTPClient) validSignature(signature string, body []byte) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(Sign(c.secretKey, body)))
}

// ToKobo переводит сумму в минимальные единицы валюты.
func ToKobo(amount decimal.Decimal) int64 {
	return amount.Mul(koboPerNaira).Round(0).IntPart()
}

// FromKobo обратное к ToKobo преобразование.
func FromKobo(kobo int64) decimal.Decimal {
	return decimal.New(kobo, -2)
}

func toVerification(d transactionData) *domain.GatewayVerification {
	return &domain.GatewayVerification{
		Reference: d.Reference,
		Status:    d.Status,
		Amount:    FromKobo(d.Amount),
	}
}

//nolint:nonamedreturns
func (c HTTPClient) do(ctx context.Context, method, route string, body []byte, target any) (err error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+route, reqBody)
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("read response: %s", readErr.Error())
	}

	if resp.StatusCode != http.StatusOK {
		var failure envelope[json.RawMessage]
		_ = json.Unmarshal(respBody, &failure)
		return NewStatusCodeError(resp.StatusCode, failure.Message)
	}

	if jsonErr := json.Unmarshal(respBody, target); jsonErr != nil {
		return fmt.Errorf("parse response: %s", jsonErr.Error())
	}
	return nil
}

func parseRetryAfter(value string) time.Duration {
	minValue := decimal.NewFromInt(minRetryAfter)
	maxValue := decimal.NewFromInt(maxRetryAfter)

	retryAfter, parseErr := decimal.NewFromString(value)
	if parseErr != nil || retryAfter.LessThan(minValue) || retryAfter.GreaterThan(maxValue) {
		// в случае ошибки или неверных данных ставим 60 секунд
		retryAfter = decimal.NewFromInt(60) //nolint:mnd
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
