package list_free_slots

import "github.com/m04kA/SMC-SlotService/pkg/types"

// Request модель запроса на получение свободных слотов
type Request struct {
	ServiceID int64  // ID услуги
	Weekday   string // День недели ("monday" ... "sunday")
}

// Response модель ответа со списком свободных слотов
type Response struct {
	ServiceID int64
	Weekday   string
	Slots     []Slot
}

// Slot свободный слот с остатком ёмкости
type Slot struct {
	StartTime         types.TimeString
	EndTime           types.TimeString
	AvailableCapacity int
	TotalCapacity     int
}
