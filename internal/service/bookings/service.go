package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/internal/service/bookings/models"
)

// Service сервис чтения бронирований и обслуживания их жизненного цикла
// Создание бронирований здесь намеренно отсутствует: единственная точка
// записи — usecase request_booking
type Service struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование; владелец услуги — любые
// бронирования своей услуги
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		// Не владелец бронирования — проверяем, не владелец ли услуги
		svc, err := s.serviceRepo.GetByID(ctx, booking.ServiceID)
		if err != nil && !errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Error("GetByID: failed to get service id=%d: %v", booking.ServiceID, err)
			return nil, fmt.Errorf("%w: GetByID - failed to get service: %v", ErrInternal, err)
		}
		if svc == nil || !svc.IsOwnedBy(userID) {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%v for user=%d", req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// SweepPassed переводит pending-бронирования с истекшим временем в passed
// Запускается по расписанию из main. Статус информационный и не влияет
// на подсчет ёмкости, поэтому сметание не требует транзакции admission
func (s *Service) SweepPassed(ctx context.Context, now time.Time) error {
	affected, err := s.bookingRepo.MarkPassed(ctx, now)
	if err != nil {
		s.logger.Error("SweepPassed: repository error: %v", err)
		return fmt.Errorf("%w: SweepPassed - repository error: %v", ErrInternal, err)
	}

	if affected > 0 {
		s.logger.Info("SweepPassed: marked %d bookings as passed", affected)
	}

	return nil
}
