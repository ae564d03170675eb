package domain

import "github.com/m04kA/SMC-SlotService/pkg/types"

// FreeSlot represents a bookable time slot with remaining capacity
type FreeSlot struct {
	StartTime         types.TimeString
	EndTime           types.TimeString
	AvailableCapacity int
	TotalCapacity     int
}

// IsFullyAvailable returns true if no seats are taken yet
func (s *FreeSlot) IsFullyAvailable() bool {
	return s.AvailableCapacity == s.TotalCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *FreeSlot) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	occupied := s.TotalCapacity - s.AvailableCapacity
	return float64(occupied) / float64(s.TotalCapacity) * 100
}
