package services

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	SoftDelete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, window *domain.ScheduleWindow) (*domain.ScheduleWindow, error)
	GetByServiceAndWeekday(ctx context.Context, serviceID int64, weekday domain.Weekday) (*domain.ScheduleWindow, error)
	ListByService(ctx context.Context, serviceID int64) ([]*domain.ScheduleWindow, error)
	Update(ctx context.Context, serviceID int64, weekday domain.Weekday, start, end types.TimeString) (*domain.ScheduleWindow, error)
	DeleteByService(ctx context.Context, serviceID int64) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен только для проверки наличия бронирований при изменении услуги
type BookingRepository interface {
	HasAnyForService(ctx context.Context, serviceID int64) (bool, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
