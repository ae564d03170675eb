package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultCapacity               = 1
	DefaultSeats                  = 1
)

// Business validation constants
const (
	MinDurationMinutes   = 30
	MaxDurationMinutes   = 480 // 8 hours
	MinCapacity          = 1
	MaxCapacity          = 1000
	MaxServiceNameLength = 255
	MaxAddressLength     = 255
	MaxDescriptionLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingStatuses все допустимые статусы бронирования
var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusPassed,
}
