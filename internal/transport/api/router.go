package api

import (
	"time"

	"github.com/fsdevblog/hustlaa/internal/transport/api/middlewares"
	"github.com/fsdevblog/hustlaa/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// GatewayServiceTimeout для запросов, которые ходят в платежный шлюз.
	GatewayServiceTimeout = 10 * time.Second
)

const (
	MetricsRoute = "/metrics"
	RouteGroup   = "/api"

	WalletBalanceRoute      = "/wallet/balance"
	WalletTransactionsRoute = "/wallet/transactions"
	WalletTopUpRoute        = "/wallet/topup"
	WalletWithdrawRoute     = "/wallet/withdraw"
	WalletPayBookingRoute   = "/wallet/pay-booking"
	WalletSettleRoute       = "/wallet/withdrawals/:id/settle"

	BookingsRoute         = "/bookings"
	BookingRoute          = "/bookings/:id"
	BookingTimelineRoute  = "/bookings/:id/timeline"
	BookingStatusRoute    = "/bookings/:id/status"
	BookingArrivedRoute   = "/bookings/:id/arrived"
	BookingCompleteRoute  = "/bookings/:id/complete"
	BookingETARoute       = "/bookings/:id/eta"
	BookingCancelRoute    = "/bookings/:id/cancel"
	BookingReviewRoute    = "/bookings/:id/review"
	PaymentInitRoute      = "/payments/initialize"
	PaymentVerifyRoute    = "/payments/verify/:reference"
	PaymentWebhookRoute   = "/payments/webhook/paystack"
	PaystackSignatureName = "x-paystack-signature"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	WalletService  WalletServicer
	BookingService BookingServicer
	ReviewService  ReviewServicer
	PaymentService PaymentServicer
	JWTSecretKey   []byte
	// RateLimiter необязателен. Если nil, частота запросов не ограничивается.
	RateLimiter *middlewares.RateLimiter
}

func New(args RouterArgs) *gin.Engine {
	if err := registerValidators(); err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.Metrics())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	walletHandler := NewWalletHandler(args.WalletService)
	bookingHandler := NewBookingHandler(args.BookingService, args.ReviewService)
	paymentHandler := NewPaymentHandler(args.PaymentService)

	api := r.Group(RouteGroup)
	if args.RateLimiter != nil {
		api.Use(middlewares.RateLimit(args.RateLimiter))
	}

	// вебхук подписан шлюзом, токена у него нет.
	api.POST(PaymentWebhookRoute, paymentHandler.Webhook)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	customer := middlewares.RoleRequired(tokens.RoleCustomer)
	artisan := middlewares.RoleRequired(tokens.RoleArtisan)
	admin := middlewares.RoleRequired(tokens.RoleAdmin)

	api.GET(WalletBalanceRoute, walletHandler.Balance)
	api.GET(WalletTransactionsRoute, walletHandler.Transactions)
	api.POST(WalletTopUpRoute, walletHandler.TopUp)
	api.POST(WalletWithdrawRoute, walletHandler.Withdraw)
	api.POST(WalletPayBookingRoute, customer, walletHandler.PayBooking)
	api.POST(WalletSettleRoute, admin, walletHandler.SettleWithdrawal)

	api.POST(BookingsRoute, customer, bookingHandler.Create)
	api.GET(BookingRoute, bookingHandler.Show)
	api.GET(BookingTimelineRoute, bookingHandler.Timeline)
	api.PATCH(BookingStatusRoute, bookingHandler.UpdateStatus)
	api.PATCH(BookingArrivedRoute, artisan, bookingHandler.Arrived)
	api.PATCH(BookingCompleteRoute, artisan, bookingHandler.Complete)
	api.PATCH(BookingETARoute, artisan, bookingHandler.SetETA)
	api.PATCH(BookingCancelRoute, customer, bookingHandler.Cancel)
	api.POST(BookingReviewRoute, customer, bookingHandler.Review)

	api.POST(PaymentInitRoute, customer, paymentHandler.Initialize)
	api.POST(PaymentVerifyRoute, customer, paymentHandler.Verify)
	return r
}
