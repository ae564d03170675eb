package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

func booking(start, end types.TimeString, seats int, status BookingStatus) *Booking {
	return &Booking{
		ServiceID: 1,
		Weekday:   Monday,
		StartTime: start,
		EndTime:   end,
		Seats:     seats,
		Status:    status,
	}
}

func TestOverlappingSeats(t *testing.T) {
	bookings := []*Booking{
		booking("09:00", "10:00", 2, StatusPending),
		booking("10:00", "11:00", 1, StatusPending),
		booking("10:30", "11:30", 3, StatusPassed),
	}

	tests := []struct {
		name       string
		start, end types.TimeString
		want       int
	}{
		{name: "no overlap before", start: "08:00", end: "09:00", want: 0},
		{name: "exact match first", start: "09:00", end: "10:00", want: 2},
		{name: "spans two", start: "09:30", end: "10:30", want: 3},
		{name: "spans all three", start: "09:30", end: "11:00", want: 6},
		{name: "boundary touch does not count", start: "11:30", end: "12:30", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlappingSeats(bookings, tt.start, tt.end))
		})
	}
}

func TestOverlappingSeats_StatusDoesNotFilter(t *testing.T) {
	// passed-бронирования продолжают занимать места в недельном пуле
	bookings := []*Booking{
		booking("10:00", "11:00", 2, StatusPassed),
	}
	assert.Equal(t, 2, OverlappingSeats(bookings, "10:00", "11:00"))
}

func TestScheduleWindow_Contains(t *testing.T) {
	window := &ScheduleWindow{StartTime: "09:00", EndTime: "18:00"}

	tests := []struct {
		name       string
		start, end types.TimeString
		want       bool
	}{
		{name: "strictly inside", start: "10:00", end: "11:00", want: true},
		{name: "exact window", start: "09:00", end: "18:00", want: true},
		{name: "touches start", start: "09:00", end: "10:00", want: true},
		{name: "touches end", start: "17:00", end: "18:00", want: true},
		{name: "starts before window", start: "08:30", end: "10:00", want: false},
		{name: "ends after window", start: "17:30", end: "18:30", want: false},
		{name: "fully outside", start: "19:00", end: "20:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.start, tt.end))
		})
	}
}
