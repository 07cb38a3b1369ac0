package api

import (
	"bytes"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/logger"
	"github.com/fsdevblog/hustlaa/internal/service"
	"github.com/fsdevblog/hustlaa/internal/transport/api/mocks"
	"github.com/fsdevblog/hustlaa/internal/transport/api/testutils"
	"github.com/fsdevblog/hustlaa/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockBookingService *mocks.MockBookingServicer
	mockReviewService  *mocks.MockReviewServicer
	customerToken      string
	artisanToken       string
}

const (
	testCustomerID int64 = 1
	testArtisanID  int64 = 2
)

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockBookingService = mocks.NewMockBookingServicer(mockCtrl)
	s.mockReviewService = mocks.NewMockReviewServicer(mockCtrl)
	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		BookingService: s.mockBookingService,
		ReviewService:  s.mockReviewService,
		JWTSecretKey:   testJWTSecret,
	})
	s.customerToken = userToken(s.T(), testCustomerID, tokens.RoleCustomer)
	s.artisanToken = userToken(s.T(), testArtisanID, tokens.RoleArtisan)
}

func (s *BookingHandlerTestSuite) request(method, url, token string, payload []byte) *http.Response {
	args := testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
	}
	if payload != nil {
		args.Body = bytes.NewReader(payload)
	}
	res, err := testutils.MakeRequest(args, withJSON(), withAuth(token))
	s.Require().NoError(err)
	return res
}

func (s *BookingHandlerTestSuite) TestCreate() {
	bookingDate := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	s.mockBookingService.EXPECT().
		Create(gomock.Any(), testCustomerID, gomock.AssignableToTypeOf(service.CreateBookingArgs{})).
		DoAndReturn(func(_ any, _ int64, args service.CreateBookingArgs) (*domain.Booking, error) {
			s.Equal(int64(3), args.ArtisanID)
			s.Equal(int64(4), args.ServiceID)
			s.True(bookingDate.Equal(args.BookingDate))
			s.Require().NotNil(args.Latitude)
			return &domain.Booking{
				ID:          10,
				CustomerID:  testCustomerID,
				ArtisanID:   args.ArtisanID,
				ServiceID:   args.ServiceID,
				BookingDate: args.BookingDate,
				BookingTime: args.BookingTime,
				TotalAmount: decimal.NewFromInt(15000),
				Status:      domain.BookingStatusPending,
			}, nil
		})

	valid := []byte(`{
		"artisan_id": 3,
		"service_id": 4,
		"booking_date": "2026-11-20",
		"booking_time": "10:00",
		"location_address": "12 Admiralty Way, Lekki",
		"latitude": 6.4474,
		"longitude": 3.4723
	}`)

	s.Run("created", func() {
		res := s.request(http.MethodPost, RouteGroup+BookingsRoute, s.customerToken, valid)
		s.Equal(http.StatusCreated, res.StatusCode)

		var body BookingResponse
		decodeBody(s.T(), res, &body)
		s.Equal(int64(10), body.ID)
		s.Equal("2026-11-20", body.BookingDate)
		s.Equal(domain.BookingStatusPending, body.Status)
		s.True(decimal.NewFromInt(15000).Equal(body.TotalAmount))
	})

	cases := []struct {
		name       string
		token      string
		payload    []byte
		wantStatus int
	}{
		{
			name:       "artisan cannot book",
			token:      s.artisanToken,
			payload:    valid,
			wantStatus: http.StatusForbidden,
		}, {
			name: "invalid date",
			payload: []byte(`{"artisan_id": 3, "service_id": 4, "booking_date": "20/11/2026",
				"booking_time": "10:00", "location_address": "Lekki"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name: "invalid latitude",
			payload: []byte(`{"artisan_id": 3, "service_id": 4, "booking_date": "2026-11-20",
				"booking_time": "10:00", "location_address": "Lekki", "latitude": 120}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "missing address",
			payload:    []byte(`{"artisan_id": 3, "service_id": 4, "booking_date": "2026-11-20", "booking_time": "10:00"}`),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name: "address too long",
			payload: []byte(`{"artisan_id": 3, "service_id": 4, "booking_date": "2026-11-20", "booking_time": "10:00",
				"location_address": "` + testutils.GenerateOverBytesUnderRunes(200) + `"}`),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			token := t.token
			if token == "" {
				token = s.customerToken
			}
			res := s.request(http.MethodPost, RouteGroup+BookingsRoute, token, t.payload)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *BookingHandlerTestSuite) TestServiceErrors() {
	s.mockBookingService.EXPECT().Create(gomock.Any(), testCustomerID, gomock.Any()).
		Return(nil, domain.ErrArtisanUnavailable)
	s.mockBookingService.EXPECT().Get(gomock.Any(), testCustomerID, int64(404)).
		Return(nil, domain.ErrBookingNotFound)
	s.mockBookingService.EXPECT().Get(gomock.Any(), testCustomerID, int64(5)).
		Return(nil, domain.ErrNotAuthorized)

	s.Run("artisan unavailable", func() {
		res := s.request(http.MethodPost, RouteGroup+BookingsRoute, s.customerToken, []byte(`{
			"artisan_id": 3, "service_id": 4, "booking_date": "2026-11-20",
			"booking_time": "10:00", "location_address": "Lekki"}`))
		s.Equal(http.StatusConflict, res.StatusCode)

		var body errorResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.ErrArtisanUnavailable.Error(), body.Error)
	})

	s.Run("not found", func() {
		res := s.request(http.MethodGet, RouteGroup+"/bookings/404", s.customerToken, nil)
		defer res.Body.Close()
		s.Equal(http.StatusNotFound, res.StatusCode)
	})

	s.Run("foreign booking", func() {
		res := s.request(http.MethodGet, RouteGroup+"/bookings/5", s.customerToken, nil)
		defer res.Body.Close()
		s.Equal(http.StatusForbidden, res.StatusCode)
	})

	s.Run("invalid id", func() {
		res := s.request(http.MethodGet, RouteGroup+"/bookings/-1", s.customerToken, nil)
		defer res.Body.Close()
		s.Equal(http.StatusBadRequest, res.StatusCode)
	})
}

func (s *BookingHandlerTestSuite) TestTimeline() {
	s.mockBookingService.EXPECT().Timeline(gomock.Any(), testArtisanID, int64(8)).
		Return([]domain.TimelineEvent{
			{ID: 1, BookingID: 8, EventType: domain.TimelineConfirmed, Description: "Booking confirmed"},
			{ID: 2, BookingID: 8, EventType: domain.TimelineStarted, Description: "Artisan arrived at location"},
		}, nil)

	res := s.request(http.MethodGet, RouteGroup+"/bookings/8/timeline", s.artisanToken, nil)
	s.Equal(http.StatusOK, res.StatusCode)

	var body []TimelineEventResponse
	decodeBody(s.T(), res, &body)
	s.Require().Len(body, 2)
	s.Equal(domain.TimelineStarted, body[1].EventType)
}

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	gomock.InOrder(
		s.mockBookingService.EXPECT().
			UpdateStatus(gomock.Any(), testArtisanID, int64(8), domain.BookingStatusConfirmed).
			Return(&domain.Booking{ID: 8, Status: domain.BookingStatusConfirmed}, nil),
		s.mockBookingService.EXPECT().
			UpdateStatus(gomock.Any(), testArtisanID, int64(8), domain.BookingStatusPending).
			Return(nil, domain.NewInvalidTransitionError(domain.BookingStatusConfirmed, domain.BookingStatusPending)),
	)

	s.Run("confirmed", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/status", s.artisanToken, []byte(`{"status": "confirmed"}`))
		s.Equal(http.StatusOK, res.StatusCode)

		var body BookingResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.BookingStatusConfirmed, body.Status)
	})

	s.Run("invalid transition", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/status", s.artisanToken, []byte(`{"status": "pending"}`))
		s.Equal(http.StatusConflict, res.StatusCode)

		var body errorResponse
		decodeBody(s.T(), res, &body)
		s.Contains(body.Error, "cannot move from `confirmed` to `pending`")
	})

	s.Run("unknown status", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/status", s.artisanToken, []byte(`{"status": "done"}`))
		defer res.Body.Close()
		s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	})
}

func (s *BookingHandlerTestSuite) TestArtisanActions() {
	eta := time.Date(2026, 11, 20, 9, 30, 0, 0, time.UTC)
	arrived := time.Now()

	s.mockBookingService.EXPECT().MarkArrived(gomock.Any(), testArtisanID, int64(8)).
		Return(&domain.Booking{ID: 8, Status: domain.BookingStatusInProgress, ActualArrivalTime: &arrived}, nil)
	s.mockBookingService.EXPECT().Complete(gomock.Any(), testArtisanID, int64(8), "").
		Return(&domain.Booking{ID: 8, Status: domain.BookingStatusCompleted}, nil)
	s.mockBookingService.EXPECT().Complete(gomock.Any(), testArtisanID, int64(9), "Replaced the faucet").
		Return(&domain.Booking{ID: 9, Status: domain.BookingStatusCompleted}, nil)
	s.mockBookingService.EXPECT().SetETA(gomock.Any(), testArtisanID, int64(8), gomock.Any()).
		DoAndReturn(func(_ any, _, _ int64, got time.Time) (*domain.Booking, error) {
			s.True(eta.Equal(got))
			return &domain.Booking{ID: 8, EstimatedArrivalTime: &got}, nil
		})

	s.Run("arrived", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/arrived", s.artisanToken, nil)
		s.Equal(http.StatusOK, res.StatusCode)

		var body BookingResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.BookingStatusInProgress, body.Status)
		s.NotNil(body.ActualArrivalTime)
	})

	s.Run("complete without body", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/complete", s.artisanToken, nil)
		defer res.Body.Close()
		s.Equal(http.StatusOK, res.StatusCode)
	})

	s.Run("complete with notes", func() {
		res := s.request(
			http.MethodPatch, RouteGroup+"/bookings/9/complete", s.artisanToken,
			[]byte(`{"completion_notes": "Replaced the faucet"}`),
		)
		defer res.Body.Close()
		s.Equal(http.StatusOK, res.StatusCode)
	})

	s.Run("eta", func() {
		res := s.request(
			http.MethodPatch, RouteGroup+"/bookings/8/eta", s.artisanToken,
			[]byte(`{"estimated_arrival_time": "2026-11-20T09:30:00Z"}`),
		)
		defer res.Body.Close()
		s.Equal(http.StatusOK, res.StatusCode)
	})

	s.Run("eta missing", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/eta", s.artisanToken, []byte(`{}`))
		defer res.Body.Close()
		s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	})

	s.Run("customer cannot mark arrival", func() {
		res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/arrived", s.customerToken, nil)
		defer res.Body.Close()
		s.Equal(http.StatusForbidden, res.StatusCode)
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	gomock.InOrder(
		s.mockBookingService.EXPECT().Cancel(gomock.Any(), testCustomerID, int64(8)).
			Return(&domain.Booking{ID: 8, Status: domain.BookingStatusCancelled}, nil),
		s.mockBookingService.EXPECT().Cancel(gomock.Any(), testCustomerID, int64(8)).
			Return(nil, domain.NewInvalidTransitionError(domain.BookingStatusCancelled, domain.BookingStatusCancelled)),
	)

	res := s.request(http.MethodPatch, RouteGroup+"/bookings/8/cancel", s.customerToken, nil)
	s.Equal(http.StatusOK, res.StatusCode)
	_ = res.Body.Close()

	res = s.request(http.MethodPatch, RouteGroup+"/bookings/8/cancel", s.customerToken, nil)
	s.Equal(http.StatusConflict, res.StatusCode)
	_ = res.Body.Close()

	res = s.request(http.MethodPatch, RouteGroup+"/bookings/8/cancel", s.artisanToken, nil)
	s.Equal(http.StatusForbidden, res.StatusCode)
	_ = res.Body.Close()
}

func (s *BookingHandlerTestSuite) TestReview() {
	gomock.InOrder(
		s.mockReviewService.EXPECT().Create(gomock.Any(), testCustomerID, int64(8), 5, "Great job").
			Return(&service.CreateReviewResult{
				Review: &domain.Review{ID: 1, BookingID: 8, ArtisanID: 3, Rating: 5, Comment: "Great job"},
				Artisan: &domain.ArtisanProfile{
					ID: 3, Rating: decimal.RequireFromString("4.50"), TotalReviews: 2,
				},
			}, nil),
		s.mockReviewService.EXPECT().Create(gomock.Any(), testCustomerID, int64(8), 4, "").
			Return(nil, domain.ErrReviewAlreadyExists),
	)

	s.Run("created", func() {
		res := s.request(
			http.MethodPost, RouteGroup+"/bookings/8/review", s.customerToken,
			[]byte(`{"rating": 5, "comment": "Great job"}`),
		)
		s.Equal(http.StatusCreated, res.StatusCode)

		var body ReviewResponse
		decodeBody(s.T(), res, &body)
		s.True(decimal.RequireFromString("4.5").Equal(body.ArtisanRating))
		s.Equal(int64(2), body.ArtisanTotalReviews)
	})

	s.Run("already reviewed", func() {
		res := s.request(http.MethodPost, RouteGroup+"/bookings/8/review", s.customerToken, []byte(`{"rating": 4}`))
		s.Equal(http.StatusConflict, res.StatusCode)

		var body errorResponse
		decodeBody(s.T(), res, &body)
		s.Equal(domain.ErrReviewAlreadyExists.Error(), body.Error)
	})

	for _, payload := range []string{`{"rating": 6}`, `{"rating": 0}`, `{}`} {
		s.Run("invalid rating "+payload, func() {
			res := s.request(http.MethodPost, RouteGroup+"/bookings/8/review", s.customerToken, []byte(payload))
			defer res.Body.Close()
			s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
		})
	}
}
