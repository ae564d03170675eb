package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	marked   int64
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) MarkPassed(_ context.Context, _ time.Time) (int64, error) {
	return r.marked, nil
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		10: {
			ID:        10,
			ServiceID: 1,
			UserID:    5,
			Weekday:   domain.Monday,
			StartTime: "10:00",
			EndTime:   "11:00",
			Seats:     1,
			Status:    domain.StatusPending,
		},
	}}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, OwnerID: 100},
	}}

	return NewService(bookings, services, noopLogger{}), bookings
}

// --- тесты ---

func TestGetByID_OwnBooking(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestGetByID_ServiceOwnerSeesBooking(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 10, 77)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 404, 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_FilterByStatus(t *testing.T) {
	svc, repo := newService()

	repo.bookings[11] = &domain.Booking{
		ID: 11, ServiceID: 1, UserID: 5,
		Weekday: domain.Friday, StartTime: "12:00", EndTime: "13:00",
		Seats: 1, Status: domain.StatusPassed,
	}

	all, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	passed, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 5,
		Status: ptr.Ptr("passed"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, passed.Total)
	assert.Equal(t, "passed", passed.Bookings[0].Status)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 5,
		Status: ptr.Ptr("cancelled"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSweepPassed(t *testing.T) {
	svc, repo := newService()
	repo.marked = 3

	err := svc.SweepPassed(context.Background(), time.Now())
	assert.NoError(t, err)
}
