package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string // опциональный фильтр: "pending" | "passed"
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{UserID: r.UserID}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"serviceId"`
	UserID    int64  `json:"userId"`
	Weekday   string `json:"weekday"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Duration  int    `json:"durationMinutes"`
	Seats     int    `json:"seats"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		ServiceID: b.ServiceID,
		UserID:    b.UserID,
		Weekday:   b.Weekday.String(),
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Duration:  b.Duration,
		Seats:     b.Seats,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку статуса в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	for _, known := range domain.BookingStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
