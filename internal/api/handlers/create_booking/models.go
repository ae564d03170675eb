package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	requestBooking "github.com/m04kA/SMC-SlotService/internal/usecase/request_booking"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64  `json:"serviceId"`
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	StartTime string `json:"startTime"` // "10:00"
	Seats     int    `json:"seats"`
	Duration  *int   `json:"durationMinutes,omitempty"` // nil = длительность услуги
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	UserID          int64  `json:"userId"`
	Weekday         string `json:"weekday"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Seats           int    `json:"seats"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*requestBooking.Request, error) {
	// Парсим время начала
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		Weekday:   r.Weekday,
		StartTime: startTime,
		Seats:     r.Seats,
		Duration:  r.Duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		UserID:          resp.UserID,
		Weekday:         resp.Weekday,
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.Duration,
		Seats:           resp.Seats,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
