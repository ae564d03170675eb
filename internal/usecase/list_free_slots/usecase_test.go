package list_free_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) ListForDay(_ context.Context, serviceID int64, weekday domain.Weekday) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.Weekday == weekday {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeScheduleRepo struct {
	windows map[domain.Weekday]*domain.ScheduleWindow
}

func (r *fakeScheduleRepo) GetByServiceAndWeekday(_ context.Context, _ int64, weekday domain.Weekday) (*domain.ScheduleWindow, error) {
	w, ok := r.windows[weekday]
	if !ok {
		return nil, scheduleRepo.ErrWindowNotFound
	}
	return w, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUseCase(capacity, duration int, window *domain.ScheduleWindow, bookings []*domain.Booking) *UseCase {
	windows := map[domain.Weekday]*domain.ScheduleWindow{}
	if window != nil {
		windows[window.Weekday] = window
	}

	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeServiceRepo{services: map[int64]*domain.Service{
			1: {ID: 1, Capacity: capacity, Duration: duration},
		}},
		&fakeScheduleRepo{windows: windows},
		noopLogger{},
	)
}

func mondayWindow(start, end types.TimeString) *domain.ScheduleWindow {
	return &domain.ScheduleWindow{ServiceID: 1, Weekday: domain.Monday, StartTime: start, EndTime: end}
}

func mondayBooking(start, end types.TimeString, seats int) *domain.Booking {
	return &domain.Booking{ServiceID: 1, Weekday: domain.Monday, StartTime: start, EndTime: end, Seats: seats}
}

// --- тесты ---

func TestExecute_TilesWindowFromStart(t *testing.T) {
	uc := newUseCase(3, 60, mondayWindow("09:00", "12:00"), nil)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "monday"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
	// Последний слот касается границы окна
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[2].EndTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, 3, slot.AvailableCapacity)
		assert.Equal(t, 3, slot.TotalCapacity)
	}
}

func TestExecute_PartialTrailingSlotDropped(t *testing.T) {
	// Окно 09:00-10:30 при часовой длительности дает один слот, хвост 30 минут отбрасывается
	uc := newUseCase(1, 60, mondayWindow("09:00", "10:30"), nil)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "monday"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
}

func TestExecute_BookingsReduceCapacity(t *testing.T) {
	bookings := []*domain.Booking{
		mondayBooking("09:00", "10:00", 1),
		// Длинное бронирование пересекает два слота
		mondayBooking("10:00", "12:00", 2),
	}
	uc := newUseCase(2, 60, mondayWindow("09:00", "12:00"), bookings)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "monday"})
	require.NoError(t, err)

	// Слоты 10:00 и 11:00 заполнены целиком и не возвращаются
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 1, resp.Slots[0].AvailableCapacity)
	assert.Equal(t, 2, resp.Slots[0].TotalCapacity)
}

func TestExecute_PassedBookingsStillOccupySeats(t *testing.T) {
	booked := mondayBooking("09:00", "10:00", 1)
	booked.Status = domain.StatusPassed

	uc := newUseCase(1, 60, mondayWindow("09:00", "11:00"), []*domain.Booking{booked})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "monday"})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
}

func TestExecute_NoWindowReturnsEmptySlots(t *testing.T) {
	uc := newUseCase(2, 60, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "monday"})
	require.NoError(t, err)

	assert.Equal(t, "monday", resp.Weekday)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newUseCase(2, 60, mondayWindow("09:00", "12:00"), nil)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 42, Weekday: "monday"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidWeekday(t *testing.T) {
	uc := newUseCase(2, 60, mondayWindow("09:00", "12:00"), nil)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Weekday: "someday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTileWindow_WindowShorterThanDuration(t *testing.T) {
	starts := tileWindow(mondayWindow("09:00", "09:30"), 60)
	assert.Empty(t, starts)
}
