package request_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований (capacity ledger)
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	OverlappingSeats(ctx context.Context, serviceID int64, weekday domain.Weekday, start, end types.TimeString, excluding *int64) (int, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс каталога расписаний
type ScheduleRepository interface {
	GetByServiceAndWeekday(ctx context.Context, serviceID int64, weekday domain.Weekday) (*domain.ScheduleWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdmissionMetrics интерфейс бизнес-метрик admission; nil отключает сбор
type AdmissionMetrics interface {
	IncBookingAdmitted(weekday string)
	IncBookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
