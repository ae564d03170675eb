package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending BookingStatus = "pending"
	StatusPassed  BookingStatus = "passed"
)

// Booking represents committed seats in a weekly recurring time slot
//
// Ёмкость считается по (service, weekday, пересечение времени), а не по
// календарной дате: два бронирования на разные даты с одним weekday и
// пересекающимся временем конкурируют за один пул мест. Date — производное
// информационное поле
type Booking struct {
	ID        int64
	ServiceID int64
	UserID    int64
	Weekday   Weekday
	Date      time.Time // ближайшая дата с подходящим weekday, вычисляется при создании
	StartTime types.TimeString
	Duration  int              // минуты, положительное кратное Service.Duration
	EndTime   types.TimeString // StartTime + Duration, не задается извне
	Seats     int
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the booked slot has not passed yet
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// OverlappingSeats суммирует места бронирований, пересекающихся с [start, end)
// Статус бронирования не влияет на подсчет: passed-бронирования продолжают
// занимать места в недельном пуле
func OverlappingSeats(bookings []*Booking, start, end types.TimeString) int {
	total := 0
	for _, b := range bookings {
		if types.Overlaps(b.StartTime, b.EndTime, start, end) {
			total += b.Seats
		}
	}
	return total
}

// UserBookingsFilter фильтр для выборки бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus // опционально
}
