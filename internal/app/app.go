package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsdevblog/hustlaa/internal/config"
	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/events"
	"github.com/fsdevblog/hustlaa/internal/logger"
	"github.com/fsdevblog/hustlaa/internal/notify"
	"github.com/fsdevblog/hustlaa/internal/repository/pgrepo"
	"github.com/fsdevblog/hustlaa/internal/service"
	"github.com/fsdevblog/hustlaa/internal/transport/api"
	"github.com/fsdevblog/hustlaa/internal/transport/api/middlewares"
	"github.com/fsdevblog/hustlaa/internal/transport/paystack"
	"github.com/fsdevblog/hustlaa/internal/transport/paystack/client"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	shutdownTimeout = 10 * time.Second
	rateLimiterTTL  = 10 * time.Minute
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(
		notifyCtx,
		a.Config.MigrationsDir,
		a.Config.DatabaseDSN,
		pgrepo.PoolOptions{MaxConns: a.Config.DBMaxConns, MaxConnIdleTime: a.Config.DBMaxConnIdleTime},
		logger.Component(a.Logger, "postgres"),
	)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork := uow.NewUnitOfWork(
		conn,
		uow.WithLockTimeout(a.Config.LockTimeout),
		uow.WithStatementTimeout(a.Config.StatementTimeout),
	)
	if regErr := pgrepo.RegisterRepositories(unitOfWork); regErr != nil {
		return fmt.Errorf("app run: %s", regErr.Error())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			a.Logger.WithError(err).Error("closing redis client")
		}
	}()

	notifier, nErr := notify.NewNotifier(unitOfWork)
	if nErr != nil {
		return fmt.Errorf("app run: %s", nErr.Error())
	}
	mailer, mErr := notify.NewMailer(rdb, unitOfWork, a.Logger)
	if mErr != nil {
		return fmt.Errorf("app run: %s", mErr.Error())
	}

	publisher := a.newPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			a.Logger.WithError(err).Error("closing event publisher")
		}
	}()

	services, sErr := service.Factory(unitOfWork, service.Collaborators{
		Notifier:  notifier,
		Mailer:    mailer,
		Publisher: publisher,
		Gateway:   client.New(a.Config.PaystackBaseURL, a.Config.PaystackSecretKey),
	}, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	rateLimiter := middlewares.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst, rateLimiterTTL)
	go rateLimiter.RunCleanup(notifyCtx)

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		WalletService:  services.WalletService,
		BookingService: services.BookingService,
		ReviewService:  services.ReviewService,
		PaymentService: services.PaymentService,
		JWTSecretKey:   []byte(a.Config.JWTUserSecret),
		RateLimiter:    rateLimiter,
	})

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	sender := notify.NewSMTPSender(
		a.Config.SMTPHost,
		strconv.Itoa(a.Config.SMTPPort),
		a.Config.SMTPUser,
		a.Config.SMTPPassword,
		a.Config.EmailFrom,
		a.Config.EmailFromName,
	)
	go notify.NewMailWorker(rdb, sender, a.Logger).Run(notifyCtx)

	processor := paystack.New(services.PaymentService, a.Logger).
		SetWorkers(uint(max(a.Config.ReconcileWorkers, 1))). //nolint:gosec
		SetLimitPerIteration(a.Config.ReconcileBatch).
		SetOlderThan(a.Config.ReconcileOlderThan).
		SetIdleInterval(a.Config.ReconcileInterval)

	go processor.Run(notifyCtx)

	var runErr error
	select {
	case <-notifyCtx.Done():
		runErr = notifyCtx.Err()
	case runErr = <-errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("http server shutdown")
	}
	return runErr
}

type publisher interface {
	service.EventPublisher
	Close() error
}

// newPublisher без брокеров события не публикуются.
func (a *App) newPublisher() publisher {
	if len(a.Config.KafkaBrokers) == 0 {
		a.Logger.Warn("kafka brokers are not configured, domain events are discarded")
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher(
		a.Config.KafkaBrokers,
		[]string{domain.TopicBookingStatusChanged, domain.TopicWalletTransactions},
		events.RetryConfig{Jitter: true},
		a.Logger,
	)
}
