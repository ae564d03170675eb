package list_free_slots

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// tileWindow нарезает окно расписания на последовательные слоты длиной duration минут
// Нарезка начинается с window.StartTime с шагом duration; слот входит в результат,
// пока его конец не выходит за window.EndTime. Слот, касающийся границы окна
// (end == window.EndTime), включается; неполный хвост отбрасывается
func tileWindow(window *domain.ScheduleWindow, duration int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	current := window.StartTime
	for current.IsBefore(window.EndTime) {
		end, err := current.AddMinutes(duration)
		if err != nil {
			// Слот перешел бы границу суток — дальше нарезать нечего
			break
		}
		if end.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, current)

		current = end
	}

	return slots
}

// freeSlots вычисляет остаток ёмкости каждого слота и отбрасывает заполненные
// Для каждого слота суммируются места всех пересекающихся бронирований
// (предикат types.Overlaps через domain.OverlappingSeats); слот попадает
// в результат, только если остаток положителен
func freeSlots(
	starts []types.TimeString,
	duration int,
	capacity int,
	bookings []*domain.Booking,
) []Slot {
	result := make([]Slot, 0, len(starts))

	for _, start := range starts {
		end, err := start.AddMinutes(duration)
		if err != nil {
			continue
		}

		booked := domain.OverlappingSeats(bookings, start, end)

		available := capacity - booked
		if available <= 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:         start,
			EndTime:           end,
			AvailableCapacity: available,
			TotalCapacity:     capacity,
		})
	}

	return result
}
