package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Service represents a bookable service published by a provider
type Service struct {
	ID          int64
	OwnerID     int64
	Name        string
	Address     string
	Capacity    int // максимум одновременных мест на любой момент времени
	Duration    int // каноническая длина слота в минутах, кратна гранулярности
	Price       int64
	Description *string
	IsDeleted   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the service accepts new bookings
func (s *Service) IsBookable() bool {
	return !s.IsDeleted
}

// IsOwnedBy returns true if the service belongs to the given provider
func (s *Service) IsOwnedBy(userID int64) bool {
	return s.OwnerID == userID
}

// ScheduleWindow недельное окно доступности услуги: [StartTime, EndTime) в день Weekday
// Инвариант: не более одного окна на пару (service, weekday)
type ScheduleWindow struct {
	ID        int64
	ServiceID int64
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if [start, end) lies fully inside the window.
// Full containment, not overlap: a booking may not straddle outside open hours
func (w *ScheduleWindow) Contains(start, end types.TimeString) bool {
	return !w.StartTime.IsAfter(start) && !end.IsAfter(w.EndTime)
}
