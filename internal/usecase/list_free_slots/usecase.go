package list_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
)

// UseCase use case перечисления свободных слотов услуги на день недели
// Чистое чтение без побочных эффектов: результат пересчитывается на каждый
// вызов, никакого кэширования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListFreeSlots: service=%d, weekday=%s", req.ServiceID, req.Weekday)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	weekday, err := domain.ParseWeekday(req.Weekday)
	if err != nil {
		uc.logger.Warn("ListFreeSlots: invalid weekday %q", req.Weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Получаем услугу (удаленные не видны)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("ListFreeSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ListFreeSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Окно расписания на день; его отсутствие — не ошибка, а пустой список слотов
	window, err := uc.scheduleRepo.GetByServiceAndWeekday(ctx, req.ServiceID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			uc.logger.Info("ListFreeSlots: service id=%d has no window on %s", req.ServiceID, weekday)
			return &Response{
				ServiceID: req.ServiceID,
				Weekday:   weekday.String(),
				Slots:     []Slot{},
			}, nil
		}
		uc.logger.Error("ListFreeSlots: failed to get schedule window: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule window: %v", ErrInternal, err)
	}

	// Нарезаем окно на слоты канонической длительности услуги
	starts := tileWindow(window, service.Duration)

	// Все бронирования дня одним запросом; пересечения считаются в памяти
	bookings, err := uc.bookingRepo.ListForDay(ctx, req.ServiceID, weekday)
	if err != nil {
		uc.logger.Error("ListFreeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots := freeSlots(starts, service.Duration, service.Capacity, bookings)

	uc.logger.Info("ListFreeSlots: %d free of %d tiled slots for service=%d on %s",
		len(slots), len(starts), req.ServiceID, weekday)

	return &Response{
		ServiceID: req.ServiceID,
		Weekday:   weekday.String(),
		Slots:     slots,
	}, nil
}
