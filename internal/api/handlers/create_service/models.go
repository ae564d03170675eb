package create_service

import (
	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

// ScheduleWindowRequest HTTP модель окна расписания
type ScheduleWindowRequest struct {
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string                  `json:"name"`
	Address         string                  `json:"address"`
	Capacity        int                     `json:"capacity"`
	DurationMinutes int                     `json:"durationMinutes"`
	Price           int64                   `json:"price"`
	Description     *string                 `json:"description,omitempty"`
	Schedule        []ScheduleWindowRequest `json:"schedule,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(ownerID int64) *models.CreateServiceRequest {
	schedule := make([]models.ScheduleWindowInput, 0, len(r.Schedule))
	for _, w := range r.Schedule {
		schedule = append(schedule, models.ScheduleWindowInput{
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	return &models.CreateServiceRequest{
		OwnerID:     ownerID,
		Name:        r.Name,
		Address:     r.Address,
		Capacity:    r.Capacity,
		Duration:    r.DurationMinutes,
		Price:       r.Price,
		Description: r.Description,
		Schedule:    schedule,
	}
}
