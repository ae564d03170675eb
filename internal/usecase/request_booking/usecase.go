package request_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
)

// UseCase use case приёма бронирования (admission)
//
// Последовательность жестких ворот, любой отказ — без побочных эффектов:
//  1. seats > 0; duration по умолчанию = длительность услуги; кратность длительности
//  2. seats <= capacity (статическая проверка, не зависит от текущих бронирований)
//  3. end = start + duration в пределах суток
//  4. [start, end) целиком внутри окна расписания на этот день недели
//  5. атомарная проверка ёмкости + вставка в сериализуемой транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      AdmissionMetrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, тогда бизнес-метрики не собираются
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	metrics AdmissionMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет admission бронирования
// Критическая секция "прочитать сумму пересекающихся мест, сравнить, вставить"
// выполняется в сериализуемой транзакции: два конкурентных запроса на
// пересекающийся слот не могут оба увидеть свободную ёмкость и оба закоммититься
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: user=%d, service=%d, weekday=%s, time=%s, seats=%d",
		req.UserID, req.ServiceID, req.Weekday, req.StartTime, req.Seats)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	weekday, err := domain.ParseWeekday(req.Weekday)
	if err != nil {
		uc.logger.Warn("RequestBooking: invalid weekday %q", req.Weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем услугу (удаленные не видны)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("RequestBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RequestBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Разрешаем длительность: по умолчанию каноническая длительность услуги,
	// иначе положительное кратное её
	duration, err := resolveDuration(req.Duration, service.Duration)
	if err != nil {
		uc.logger.Warn("RequestBooking: invalid duration for service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	// 4. Статическая проверка ёмкости: seats не могут превышать capacity
	// ни при каком состоянии бронирований
	if req.Seats > service.Capacity {
		uc.logger.Warn("RequestBooking: seats=%d exceed capacity=%d of service id=%d",
			req.Seats, service.Capacity, req.ServiceID)
		return nil, ErrCapacityExceeded
	}

	// 5. Вычисляем конец слота; выход за границу суток недопустим
	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("RequestBooking: time range invalid: %s + %dm: %v", req.StartTime, duration, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// 6. Проверка расписания: интервал целиком внутри окна на этот день
	window, err := uc.scheduleRepo.GetByServiceAndWeekday(ctx, req.ServiceID, weekday)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			uc.logger.Warn("RequestBooking: no schedule window for service id=%d on %s", req.ServiceID, weekday)
			return nil, ErrServiceClosed
		}
		uc.logger.Error("RequestBooking: failed to get schedule window: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule window: %v", ErrInternal, err)
	}

	if !window.Contains(req.StartTime, endTime) {
		uc.logger.Warn("RequestBooking: interval [%s, %s) outside window [%s, %s) for service id=%d on %s",
			req.StartTime, endTime, window.StartTime, window.EndTime, req.ServiceID, weekday)
		return nil, ErrServiceClosed
	}

	// 7. Производная дата: ближайший календарный день с этим weekday
	now := uc.timeProvider.Now()
	date := weekday.NextDateFrom(now, req.StartTime)

	var result *domain.Booking

	// 8. Атомарная проверка ёмкости + вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Сумма мест пересекающихся бронирований (строки блокируются FOR UPDATE)
		booked, err := uc.bookingRepo.OverlappingSeats(txCtx, req.ServiceID, weekday, req.StartTime, endTime, nil)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to aggregate overlapping seats: %v", err)
			return fmt.Errorf("%w: failed to aggregate overlapping seats: %v", ErrInternal, err)
		}

		// 8.2. Проверка ёмкости на момент коммита
		if booked+req.Seats > service.Capacity {
			uc.logger.Warn("RequestBooking: insufficient capacity for service id=%d: %d booked + %d requested > %d",
				req.ServiceID, booked, req.Seats, service.Capacity)
			if uc.metrics != nil {
				uc.metrics.IncBookingRejected("insufficient_capacity")
			}
			return ErrInsufficientCapacity
		}

		uc.logger.Info("RequestBooking: capacity ok for service id=%d: %d booked + %d requested <= %d",
			req.ServiceID, booked, req.Seats, service.Capacity)

		// 8.3. Вставляем бронирование в той же транзакции
		booking := &domain.Booking{
			ServiceID: req.ServiceID,
			UserID:    req.UserID,
			Weekday:   weekday,
			Date:      date,
			StartTime: req.StartTime,
			Duration:  duration,
			EndTime:   endTime,
			Seats:     req.Seats,
			Status:    domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%d (service=%d, %s %s-%s, seats=%d)",
		result.ID, result.ServiceID, result.Weekday, result.StartTime, result.EndTime, result.Seats)

	if uc.metrics != nil {
		uc.metrics.IncBookingAdmitted(result.Weekday.String())
	}

	return &Response{
		ID:        result.ID,
		ServiceID: result.ServiceID,
		UserID:    result.UserID,
		Weekday:   result.Weekday.String(),
		Date:      result.Date,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Duration:  result.Duration,
		Seats:     result.Seats,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
