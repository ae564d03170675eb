package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// --- фейки ---

type fakeServiceRepo struct {
	nextID   int64
	services map[int64]*domain.Service
	names    map[string]bool
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services: map[int64]*domain.Service{},
		names:    map[string]bool{},
	}
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if r.names[svc.Name] {
		return nil, serviceRepo.ErrDuplicateName
	}

	r.nextID++
	stored := *svc
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.services[stored.ID] = &stored
	r.names[stored.Name] = true

	result := stored
	return &result, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := r.services[id]
	if !ok || svc.IsDeleted {
		return nil, serviceRepo.ErrServiceNotFound
	}
	result := *svc
	return &result, nil
}

func (r *fakeServiceRepo) GetByOwnerID(_ context.Context, ownerID int64) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, svc := range r.services {
		if svc.OwnerID == ownerID && !svc.IsDeleted {
			copied := *svc
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	existing, ok := r.services[svc.ID]
	if !ok || existing.IsDeleted {
		return serviceRepo.ErrServiceNotFound
	}
	stored := *svc
	r.services[svc.ID] = &stored
	return nil
}

func (r *fakeServiceRepo) SoftDelete(_ context.Context, id int64) error {
	svc, ok := r.services[id]
	if !ok || svc.IsDeleted {
		return serviceRepo.ErrServiceNotFound
	}
	svc.IsDeleted = true
	return nil
}

type windowKey struct {
	serviceID int64
	weekday   domain.Weekday
}

type fakeScheduleRepo struct {
	nextID  int64
	windows map[windowKey]*domain.ScheduleWindow
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{windows: map[windowKey]*domain.ScheduleWindow{}}
}

func (r *fakeScheduleRepo) Create(_ context.Context, window *domain.ScheduleWindow) (*domain.ScheduleWindow, error) {
	key := windowKey{window.ServiceID, window.Weekday}
	if _, exists := r.windows[key]; exists {
		return nil, scheduleRepo.ErrDuplicateWeekday
	}

	r.nextID++
	stored := *window
	stored.ID = r.nextID
	r.windows[key] = &stored

	result := stored
	return &result, nil
}

func (r *fakeScheduleRepo) GetByServiceAndWeekday(_ context.Context, serviceID int64, weekday domain.Weekday) (*domain.ScheduleWindow, error) {
	w, ok := r.windows[windowKey{serviceID, weekday}]
	if !ok {
		return nil, scheduleRepo.ErrWindowNotFound
	}
	result := *w
	return &result, nil
}

func (r *fakeScheduleRepo) ListByService(_ context.Context, serviceID int64) ([]*domain.ScheduleWindow, error) {
	result := make([]*domain.ScheduleWindow, 0)
	for key, w := range r.windows {
		if key.serviceID == serviceID {
			copied := *w
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, serviceID int64, weekday domain.Weekday, start, end types.TimeString) (*domain.ScheduleWindow, error) {
	w, ok := r.windows[windowKey{serviceID, weekday}]
	if !ok {
		return nil, scheduleRepo.ErrWindowNotFound
	}
	w.StartTime = start
	w.EndTime = end

	result := *w
	return &result, nil
}

func (r *fakeScheduleRepo) DeleteByService(_ context.Context, serviceID int64) error {
	for key := range r.windows {
		if key.serviceID == serviceID {
			delete(r.windows, key)
		}
	}
	return nil
}

type fakeBookingRepo struct {
	servicesWithBookings map[int64]bool
}

func (r *fakeBookingRepo) HasAnyForService(_ context.Context, serviceID int64) (bool, error) {
	return r.servicesWithBookings[serviceID], nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- сборка ---

type fixture struct {
	svc         *Service
	bookingRepo *fakeBookingRepo
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{servicesWithBookings: map[int64]bool{}}
	return &fixture{
		svc: NewService(
			newFakeServiceRepo(),
			newFakeScheduleRepo(),
			bookings,
			fakeTxManager{},
			30,
			noopLogger{},
		),
		bookingRepo: bookings,
	}
}

func createRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		OwnerID:  100,
		Name:     "Йога-студия",
		Address:  "ул. Ленина, 1",
		Capacity: 5,
		Duration: 60,
		Price:    1500,
		Schedule: []models.ScheduleWindowInput{
			{Weekday: "monday", StartTime: "09:00", EndTime: "18:00"},
			{Weekday: "friday", StartTime: "10:00", EndTime: "16:00"},
		},
	}
}

// --- тесты ---

func TestCreate_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(100), resp.OwnerID)
	assert.Equal(t, 60, resp.Duration)
	assert.Len(t, resp.Schedule, 2)
}

func TestCreate_DurationNotMultipleOfGranularity(t *testing.T) {
	f := newFixture()

	req := createRequest()
	req.Duration = 45

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCreate_DuplicateWeekdayInSchedule(t *testing.T) {
	f := newFixture()

	req := createRequest()
	req.Schedule = []models.ScheduleWindowInput{
		{Weekday: "monday", StartTime: "09:00", EndTime: "12:00"},
		{Weekday: "monday", StartTime: "14:00", EndTime: "18:00"},
	}

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
}

func TestCreate_WindowStartMustPrecedeEnd(t *testing.T) {
	f := newFixture()

	req := createRequest()
	req.Schedule = []models.ScheduleWindowInput{
		{Weekday: "monday", StartTime: "18:00", EndTime: "09:00"},
	}

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreate_DuplicateName(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestUpdate_CapacityLockedOnceBooked(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	f.bookingRepo.servicesWithBookings[created.ID] = true

	_, err = f.svc.Update(context.Background(), &models.UpdateServiceRequest{
		ServiceID: created.ID,
		UserID:    100,
		Capacity:  ptr.Ptr(10),
	})
	assert.ErrorIs(t, err, ErrServiceLocked)

	_, err = f.svc.Update(context.Background(), &models.UpdateServiceRequest{
		ServiceID: created.ID,
		UserID:    100,
		Duration:  ptr.Ptr(90),
	})
	assert.ErrorIs(t, err, ErrServiceLocked)
}

func TestUpdate_OtherFieldsAllowedWithBookings(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	f.bookingRepo.servicesWithBookings[created.ID] = true

	resp, err := f.svc.Update(context.Background(), &models.UpdateServiceRequest{
		ServiceID: created.ID,
		UserID:    100,
		Name:      ptr.Ptr("Йога-студия на Ленина"),
		Price:     ptr.Ptr(int64(2000)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Йога-студия на Ленина", resp.Name)
	assert.Equal(t, int64(2000), resp.Price)
	assert.Equal(t, 5, resp.Capacity)
}

func TestUpdate_CapacityChangeAllowedWithoutBookings(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := f.svc.Update(context.Background(), &models.UpdateServiceRequest{
		ServiceID: created.ID,
		UserID:    100,
		Capacity:  ptr.Ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Capacity)
}

func TestUpdate_AccessDenied(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), &models.UpdateServiceRequest{
		ServiceID: created.ID,
		UserID:    999,
		Name:      ptr.Ptr("Чужая студия"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_SoftDeleteHidesService(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID, 100))

	_, err = f.svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDelete_AccessDenied(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), created.ID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAddSchedule_DuplicateWeekday(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.AddSchedule(context.Background(), &models.UpsertScheduleRequest{
		ServiceID: created.ID,
		UserID:    100,
		Weekday:   "monday",
		StartTime: "08:00",
		EndTime:   "20:00",
	})
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
}

func TestAddSchedule_NewWeekday(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := f.svc.AddSchedule(context.Background(), &models.UpsertScheduleRequest{
		ServiceID: created.ID,
		UserID:    100,
		Weekday:   "saturday",
		StartTime: "10:00",
		EndTime:   "14:00",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Schedule, 3)
}

func TestUpdateSchedule_WindowNotFound(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateSchedule(context.Background(), &models.UpsertScheduleRequest{
		ServiceID: created.ID,
		UserID:    100,
		Weekday:   "sunday",
		StartTime: "10:00",
		EndTime:   "14:00",
	})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestUpdateSchedule_InvalidTimeRange(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateSchedule(context.Background(), &models.UpsertScheduleRequest{
		ServiceID: created.ID,
		UserID:    100,
		Weekday:   "monday",
		StartTime: "18:00",
		EndTime:   "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
