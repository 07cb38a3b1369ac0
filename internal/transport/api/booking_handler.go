package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const bookingDateLayout = "2006-01-02"

type BookingHandler struct {
	bookingSvs BookingServicer
	reviewSvs  ReviewServicer
}

func NewBookingHandler(bookingSvs BookingServicer, reviewSvs ReviewServicer) *BookingHandler {
	return &BookingHandler{
		bookingSvs: bookingSvs,
		reviewSvs:  reviewSvs,
	}
}

type BookingResponse struct {
	ID                   int64                `json:"id"`
	CustomerID           int64                `json:"customer_id"`
	ArtisanID            int64                `json:"artisan_id"`
	ServiceID            int64                `json:"service_id"`
	BookingDate          string               `json:"booking_date"`
	BookingTime          string               `json:"booking_time"`
	LocationAddress      string               `json:"location_address"`
	Latitude             *float64             `json:"latitude,omitempty"`
	Longitude            *float64             `json:"longitude,omitempty"`
	TotalAmount          decimal.Decimal      `json:"total_amount"`
	Status               domain.BookingStatus `json:"status"`
	Notes                *string              `json:"notes,omitempty"`
	CompletionNotes      *string              `json:"completion_notes,omitempty"`
	EstimatedArrivalTime *time.Time           `json:"estimated_arrival_time,omitempty"`
	ActualArrivalTime    *time.Time           `json:"actual_arrival_time,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func newBookingResponse(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:                   b.ID,
		CustomerID:           b.CustomerID,
		ArtisanID:            b.ArtisanID,
		ServiceID:            b.ServiceID,
		BookingDate:          b.BookingDate.Format(bookingDateLayout),
		BookingTime:          b.BookingTime,
		LocationAddress:      b.LocationAddress,
		Latitude:             b.Latitude,
		Longitude:            b.Longitude,
		TotalAmount:          b.TotalAmount,
		Status:               b.Status,
		Notes:                b.Notes,
		CompletionNotes:      b.CompletionNotes,
		EstimatedArrivalTime: b.EstimatedArrivalTime,
		ActualArrivalTime:    b.ActualArrivalTime,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

type CreateBookingParams struct {
	ArtisanID       int64    `json:"artisan_id" binding:"required,gt=0"`
	ServiceID       int64    `json:"service_id" binding:"required,gt=0"`
	BookingDate     string   `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime     string   `json:"booking_time" binding:"required,max_bytes=20"`
	LocationAddress string   `json:"location_address" binding:"required,max_bytes=500"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes           *string  `json:"notes" binding:"omitempty,max_bytes=2000"`
}

// Create POST RouteGroup + BookingsRoute.
func (b *BookingHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CreateBookingParams
	if !bindJSON(c, &params) {
		return
	}
	// формат проверен тегом datetime.
	bookingDate, _ := time.Parse(bookingDateLayout, params.BookingDate)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.Create(reqCtx, currentUserID, service.CreateBookingArgs{
		ArtisanID:       params.ArtisanID,
		ServiceID:       params.ServiceID,
		BookingDate:     bookingDate,
		BookingTime:     params.BookingTime,
		LocationAddress: params.LocationAddress,
		Latitude:        params.Latitude,
		Longitude:       params.Longitude,
		Notes:           params.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newBookingResponse(booking))
}

// Show GET RouteGroup + BookingRoute.
func (b *BookingHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.Get(reqCtx, currentUserID, bookingID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

type TimelineEventResponse struct {
	ID          int64                    `json:"id"`
	EventType   domain.TimelineEventType `json:"event_type"`
	Description string                   `json:"description"`
	CreatedBy   *int64                   `json:"created_by,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Timeline GET RouteGroup + BookingTimelineRoute.
func (b *BookingHandler) Timeline(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	events, err := b.bookingSvs.Timeline(reqCtx, currentUserID, bookingID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]TimelineEventResponse, len(events))
	for i, event := range events {
		response[i] = TimelineEventResponse{
			ID:          event.ID,
			EventType:   event.EventType,
			Description: event.Description,
			CreatedBy:   event.CreatedBy,
			CreatedAt:   event.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

type UpdateStatusParams struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// UpdateStatus PATCH RouteGroup + BookingStatusRoute. Роль определяет сервис по участникам бронирования.
func (b *BookingHandler) UpdateStatus(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params UpdateStatusParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.UpdateStatus(reqCtx, currentUserID, bookingID, domain.BookingStatus(params.Status))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

// Arrived PATCH RouteGroup + BookingArrivedRoute.
func (b *BookingHandler) Arrived(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.MarkArrived(reqCtx, currentUserID, bookingID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

type CompleteParams struct {
	CompletionNotes string `json:"completion_notes" binding:"max_bytes=2000"`
}

// Complete PATCH RouteGroup + BookingCompleteRoute. Тело запроса необязательно.
func (b *BookingHandler) Complete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params CompleteParams
	if c.Request.ContentLength > 0 && !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.Complete(reqCtx, currentUserID, bookingID, params.CompletionNotes)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

type SetETAParams struct {
	EstimatedArrivalTime time.Time `json:"estimated_arrival_time" binding:"required"`
}

// SetETA PATCH RouteGroup + BookingETARoute.
func (b *BookingHandler) SetETA(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params SetETAParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.SetETA(reqCtx, currentUserID, bookingID, params.EstimatedArrivalTime)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

// Cancel PATCH RouteGroup + BookingCancelRoute.
func (b *BookingHandler) Cancel(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	booking, err := b.bookingSvs.Cancel(reqCtx, currentUserID, bookingID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(booking))
}

type ReviewParams struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max_bytes=2000"`
}

type ReviewResponse struct {
	ID                  int64           `json:"id"`
	BookingID           int64           `json:"booking_id"`
	ArtisanID           int64           `json:"artisan_id"`
	Rating              int             `json:"rating"`
	Comment             string          `json:"comment"`
	CreatedAt           time.Time       `json:"created_at"`
	ArtisanRating       decimal.Decimal `json:"artisan_rating"`
	ArtisanTotalReviews int64           `json:"artisan_total_reviews"`
}

// Review POST RouteGroup + BookingReviewRoute.
func (b *BookingHandler) Review(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params ReviewParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := b.reviewSvs.Create(reqCtx, currentUserID, bookingID, params.Rating, params.Comment)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &ReviewResponse{
		ID:                  res.Review.ID,
		BookingID:           res.Review.BookingID,
		ArtisanID:           res.Review.ArtisanID,
		Rating:              res.Review.Rating,
		Comment:             res.Review.Comment,
		CreatedAt:           res.Review.CreatedAt,
		ArtisanRating:       res.Artisan.Rating,
		ArtisanTotalReviews: res.Artisan.TotalReviews,
	})
}
