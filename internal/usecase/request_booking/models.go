package request_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	UserID    int64            // ID пользователя, от имени которого бронируем
	ServiceID int64            // ID услуги
	Weekday   string           // День недели ("monday" ... "sunday")
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Seats     int              // Количество мест
	Duration  *int             // Длительность в минутах; nil = длительность услуги
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	ServiceID int64
	UserID    int64
	Weekday   string
	Date      time.Time // Ближайшая дата с подходящим днем недели
	StartTime types.TimeString
	EndTime   types.TimeString
	Duration  int
	Seats     int
	Status    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
