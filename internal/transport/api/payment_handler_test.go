package api

import (
	"bytes"
	"net/http"
	"os"
	"testing"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/logger"
	"github.com/fsdevblog/hustlaa/internal/service"
	"github.com/fsdevblog/hustlaa/internal/transport/api/mocks"
	"github.com/fsdevblog/hustlaa/internal/transport/api/testutils"
	"github.com/fsdevblog/hustlaa/internal/transport/api/tokens"
	"github.com/fsdevblog/hustlaa/internal/transport/paystack/client"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *mocks.MockPaymentServicer
	customerToken      string
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)
	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		PaymentService: s.mockPaymentService,
		JWTSecretKey:   testJWTSecret,
	})
	s.customerToken = userToken(s.T(), testCustomerID, tokens.RoleCustomer)
}

func (s *PaymentHandlerTestSuite) TestInitialize() {
	gomock.InOrder(
		s.mockPaymentService.EXPECT().Initialize(gomock.Any(), testCustomerID, int64(8)).
			Return(&service.InitializePaymentResult{
				AuthorizationURL: "https://checkout.paystack.com/abc",
				AccessCode:       "abc",
				Reference:        "HUS-8-ref",
				Amount:           decimal.NewFromInt(15000),
			}, nil),
		s.mockPaymentService.EXPECT().Initialize(gomock.Any(), testCustomerID, int64(8)).
			Return(nil, domain.ErrBookingAlreadyPaid),
		s.mockPaymentService.EXPECT().Initialize(gomock.Any(), testCustomerID, int64(8)).
			Return(nil, client.NewStatusCodeError(http.StatusUnauthorized, "Invalid key")),
	)

	payload := []byte(`{"booking_id": 8}`)
	args := testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + PaymentInitRoute,
	}

	s.Run("initialized", func() {
		args.Body = bytes.NewReader(payload)
		res, err := testutils.MakeRequest(args, withJSON(), withAuth(s.customerToken))
		s.Require().NoError(err)
		s.Equal(http.StatusOK, res.StatusCode)

		var body InitializePaymentResponse
		decodeBody(s.T(), res, &body)
		s.Equal("HUS-8-ref", body.Reference)
		s.Equal("https://checkout.paystack.com/abc", body.AuthorizationURL)
	})

	s.Run("already paid", func() {
		args.Body = bytes.NewReader(payload)
		res, err := testutils.MakeRequest(args, withJSON(), withAuth(s.customerToken))
		s.Require().NoError(err)
		defer res.Body.Close()
		s.Equal(http.StatusConflict, res.StatusCode)
	})

	s.Run("gateway rejected", func() {
		args.Body = bytes.NewReader(payload)
		res, err := testutils.MakeRequest(args, withJSON(), withAuth(s.customerToken))
		s.Require().NoError(err)
		s.Equal(http.StatusBadGateway, res.StatusCode)

		var body errorResponse
		decodeBody(s.T(), res, &body)
		s.Equal("bad gateway", body.Error)
	})
}

func (s *PaymentHandlerTestSuite) TestVerify() {
	gomock.InOrder(
		s.mockPaymentService.EXPECT().Verify(gomock.Any(), testCustomerID, "HUS-8-ref").
			Return(&service.ConfirmFromPaymentResult{
				Booking: &domain.Booking{ID: 8, Status: domain.BookingStatusConfirmed},
				Payment: &domain.Payment{ID: 1, BookingID: 8, Reference: "HUS-8-ref", Status: domain.PaymentStatusCompleted},
				Changed: true,
			}, nil),
		s.mockPaymentService.EXPECT().Verify(gomock.Any(), testCustomerID, "HUS-9-ref").
			Return(nil, domain.ErrPaymentNotSuccessful),
	)

	s.Run("confirmed", func() {
		res, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    RouteGroup + "/payments/verify/HUS-8-ref",
		}, withAuth(s.customerToken))
		s.Require().NoError(err)
		s.Equal(http.StatusOK, res.StatusCode)

		var body VerifyPaymentResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.BookingStatusConfirmed, body.Booking.Status)
		s.Equal(domain.PaymentStatusCompleted, body.Payment.Status)
	})

	s.Run("not successful", func() {
		res, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    RouteGroup + "/payments/verify/HUS-9-ref",
		}, withAuth(s.customerToken))
		s.Require().NoError(err)
		s.Equal(http.StatusPaymentRequired, res.StatusCode)

		var body errorResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.ErrPaymentNotSuccessful.Error(), body.Error)
	})
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	payload := []byte(`{"event":"charge.success","data":{"reference":"HUS-8-ref","status":"success"}}`)

	gomock.InOrder(
		s.mockPaymentService.EXPECT().HandleWebhook(gomock.Any(), "valid-signature", payload).Return(nil),
		s.mockPaymentService.EXPECT().HandleWebhook(gomock.Any(), "forged", payload).
			Return(domain.ErrInvalidSignature),
		s.mockPaymentService.EXPECT().HandleWebhook(gomock.Any(), "valid-signature", payload).
			Return(domain.ErrConcurrencyConflict),
	)

	cases := []struct {
		name       string
		signature  string
		wantStatus int
	}{
		{name: "accepted without token", signature: "valid-signature", wantStatus: http.StatusOK},
		{name: "forged signature", signature: "forged", wantStatus: http.StatusUnauthorized},
		{name: "retry later", signature: "valid-signature", wantStatus: http.StatusConflict},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + PaymentWebhookRoute,
				Body:   bytes.NewReader(payload),
			}, withJSON(), testutils.WithHeader(PaystackSignatureName, t.signature))
			s.Require().NoError(err)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
