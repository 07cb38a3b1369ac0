package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/transport/api/middlewares"
	"github.com/fsdevblog/hustlaa/internal/transport/paystack/client"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errInvalidID = errors.New("invalid id")

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения типа -
// вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userIDStr, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := userIDStr.(int64)
	if !ok {
		return 0
	}
	return userID
}

// idParam читает положительный int64 из параметра пути name. При ошибке прерывает запрос со статусом 400.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidID).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

// bindJSON разбирает тело запроса в params. Ошибки валидации отдаются со статусом 422, остальные с 400.
func bindJSON(c *gin.Context, params any) bool {
	if bindErr := c.ShouldBindJSON(params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return false
	}
	return true
}

func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
}

type serviceErrorStatus struct {
	target error
	status int
}

// serviceErrorStatuses порядок важен: проверяется первое совпадение.
var serviceErrorStatuses = []serviceErrorStatus{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrInvalidSignature, http.StatusUnauthorized},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired},
	{domain.ErrPaymentNotSuccessful, http.StatusPaymentRequired},
	{domain.ErrNotAuthorized, http.StatusForbidden},
	{domain.ErrWalletNotFound, http.StatusNotFound},
	{domain.ErrBookingNotFound, http.StatusNotFound},
	{domain.ErrServiceNotFound, http.StatusNotFound},
	{domain.ErrPaymentNotFound, http.StatusNotFound},
	{domain.ErrTransactionNotFound, http.StatusNotFound},
	{domain.ErrArtisanUnavailable, http.StatusConflict},
	{domain.ErrReviewAlreadyExists, http.StatusConflict},
	{domain.ErrBookingAlreadyPaid, http.StatusConflict},
	{domain.ErrConcurrencyConflict, http.StatusConflict},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{domain.ErrInvalidRating, http.StatusUnprocessableEntity},
}

// abortWithServiceError прерывает запрос со статусом, соответствующим ошибке сервиса. Клиенту уходит
// только текст доменной ошибки, полная цепочка остается в логе.
func abortWithServiceError(c *gin.Context, err error) {
	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
		return
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		_ = c.AbortWithError(http.StatusConflict, domain.ErrInvalidTransition).SetType(gin.ErrorTypePublic)
		return
	}

	for _, s := range serviceErrorStatuses {
		if errors.Is(err, s.target) {
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			c.AbortWithStatusJSON(s.status, gin.H{"error": s.target.Error()})
			return
		}
	}

	var statusErr *client.StatusCodeError
	var tooManyErr *client.TooManyRequestError
	if errors.As(err, &statusErr) || errors.As(err, &tooManyErr) {
		_ = c.AbortWithError(http.StatusBadGateway, err).SetType(gin.ErrorTypePrivate)
		return
	}

	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}
