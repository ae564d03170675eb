package list_free_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListForDay получает все бронирования услуги на день недели
	ListForDay(ctx context.Context, serviceID int64, weekday domain.Weekday) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс каталога расписаний
type ScheduleRepository interface {
	GetByServiceAndWeekday(ctx context.Context, serviceID int64, weekday domain.Weekday) (*domain.ScheduleWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
