package request_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.entries = append(r.entries, &stored)

	result := stored
	return &result, nil
}

func (r *fakeBookingRepo) OverlappingSeats(_ context.Context, serviceID int64, weekday domain.Weekday, start, end types.TimeString, excluding *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, b := range r.entries {
		if b.ServiceID != serviceID || b.Weekday != weekday {
			continue
		}
		if excluding != nil && b.ID == *excluding {
			continue
		}
		if types.Overlaps(b.StartTime, b.EndTime, start, end) {
			total += b.Seats
		}
	}
	return total, nil
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

// fakeTxManager сериализует конкурентные транзакции мьютексом, воспроизводя
// эффект SERIALIZABLE: критические секции не перекрываются
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- сборка ---

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
}

func newFixture(capacity, duration int) *fixture {
	bookings := &fakeBookingRepo{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {
			ID:       1,
			OwnerID:  100,
			Name:     "Йога-студия",
			Capacity: capacity,
			Duration: duration,
		},
	}}
	schedules := &fakeScheduleRepo{windows: map[domain.Weekday]*domain.ScheduleWindow{
		domain.Monday: {ServiceID: 1, Weekday: domain.Monday, StartTime: "09:00", EndTime: "18:00"},
	}}

	return &fixture{
		uc: &UseCase{
			bookingRepo:  bookings,
			serviceRepo:  services,
			scheduleRepo: schedules,
			txManager:    &fakeTxManager{},
			// Среда 2025-10-15, 12:00
			timeProvider: &fixedTimeProvider{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)},
			logger:       noopLogger{},
		},
		bookingRepo: bookings,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    1,
		ServiceID: 1,
		Weekday:   "monday",
		StartTime: "10:00",
		Seats:     1,
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(2, 60)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "monday", resp.Weekday)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.Duration)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	// Среда 15-е, ближайший понедельник — 20-е
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), resp.Date)
}

func TestExecute_DefaultDurationIsServiceDuration(t *testing.T) {
	f := newFixture(2, 90)

	req := validRequest()
	req.Duration = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.Duration)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
}

func TestExecute_DurationMustBeMultiple(t *testing.T) {
	f := newFixture(2, 30)

	req := validRequest()
	req.Duration = ptr.Ptr(45)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_DurationMultipleAccepted(t *testing.T) {
	f := newFixture(2, 30)

	req := validRequest()
	req.Duration = ptr.Ptr(90)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
}

func TestExecute_SeatsExceedCapacity(t *testing.T) {
	f := newFixture(2, 60)

	req := validRequest()
	req.Seats = 3

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Отказ без побочных эффектов
	assert.Empty(t, f.bookingRepo.entries)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(2, 60)

	req := validRequest()
	req.ServiceID = 42

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoWindowMeansClosed(t *testing.T) {
	f := newFixture(2, 60)

	req := validRequest()
	req.Weekday = "tuesday"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceClosed)
}

func TestExecute_OutsideWindowIsClosed(t *testing.T) {
	f := newFixture(2, 60)

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "before opening", start: "08:00"},
		{name: "straddles opening", start: "08:30"},
		{name: "straddles closing", start: "17:30"},
		{name: "after closing", start: "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrServiceClosed)
		})
	}
}

func TestExecute_BoundarySlotSucceeds(t *testing.T) {
	f := newFixture(2, 60)

	// Слот, касающийся конца окна, допустим
	req := validRequest()
	req.StartTime = "17:00"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("18:00"), resp.EndTime)
}

func TestExecute_PastMidnightIsInvalidRange(t *testing.T) {
	f := newFixture(2, 60)

	req := validRequest()
	req.StartTime = "23:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_InsufficientCapacity(t *testing.T) {
	f := newFixture(2, 60)

	// Первое бронирование занимает оба места
	first := validRequest()
	first.Seats = 2
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Второе на тот же слот не помещается
	second := validRequest()
	second.UserID = 2
	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	// Отказ идемпотентен: повторный запрос отклоняется так же
	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	assert.Len(t, f.bookingRepo.entries, 1)
}

func TestExecute_PartialOverlapCountsAgainstPool(t *testing.T) {
	f := newFixture(2, 60)

	// 10:00-11:00, два места
	first := validRequest()
	first.Seats = 2
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// 10:30-11:30 пересекается и не помещается
	second := validRequest()
	second.UserID = 2
	second.StartTime = "10:30"
	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	// 11:00-12:00 только касается границы и проходит
	third := validRequest()
	third.UserID = 3
	third.StartTime = "11:00"
	_, err = f.uc.Execute(context.Background(), third)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsNeverOversell(t *testing.T) {
	const capacity = 2
	const workers = 16

	f := newFixture(capacity, 60)

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.UserID = int64(i + 1)
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientCapacity)
		}
	}

	assert.Equal(t, capacity, admitted)

	totalSeats := 0
	for _, b := range f.bookingRepo.entries {
		totalSeats += b.Seats
	}
	assert.LessOrEqual(t, totalSeats, capacity)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero seats", mutate: func(r *Request) { r.Seats = 0 }},
		{name: "negative seats", mutate: func(r *Request) { r.Seats = -1 }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
