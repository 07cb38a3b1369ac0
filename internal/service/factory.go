package service

import (
	"fmt"

	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	WalletService  *WalletService
	BookingService *BookingService
	ReviewService  *ReviewService
	PaymentService *PaymentService
}

type Collaborators struct {
	Notifier  Notifier
	Mailer    Mailer
	Publisher EventPublisher
	Gateway   PaymentGateway
}

func Factory(unitOfWork uow.UOW, c Collaborators, l *logrus.Logger) (*AppServices, error) {
	effects := NewSideEffects(c.Notifier, c.Mailer, c.Publisher, l)

	walletService, err := NewWalletService(unitOfWork, effects)
	if err != nil {
		return nil, fmt.Errorf("service factory: %w", err)
	}

	bookingService, err := NewBookingService(unitOfWork, effects, l)
	if err != nil {
		return nil, fmt.Errorf("service factory: %w", err)
	}

	paymentService, err := NewPaymentService(unitOfWork, bookingService, c.Gateway, l)
	if err != nil {
		return nil, fmt.Errorf("service factory: %w", err)
	}

	return &AppServices{
		WalletService:  walletService,
		BookingService: bookingService,
		ReviewService:  NewReviewService(unitOfWork, effects),
		PaymentService: paymentService,
	}, nil
}
