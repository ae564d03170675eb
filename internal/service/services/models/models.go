package models

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// ScheduleWindowInput входные данные окна расписания
type ScheduleWindowInput struct {
	Weekday   string
	StartTime string // "09:00"
	EndTime   string // "18:00"
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	OwnerID     int64
	Name        string
	Address     string
	Capacity    int
	Duration    int // минуты
	Price       int64
	Description *string
	Schedule    []ScheduleWindowInput
}

// UpdateServiceRequest запрос на обновление услуги
// Nil-поля остаются без изменений
type UpdateServiceRequest struct {
	ServiceID   int64
	UserID      int64
	Name        *string
	Address     *string
	Capacity    *int
	Duration    *int
	Price       *int64
	Description *string
}

// UpsertScheduleRequest запрос на добавление или изменение окна расписания
type UpsertScheduleRequest struct {
	ServiceID int64
	UserID    int64
	Weekday   string
	StartTime string
	EndTime   string
}

// ScheduleWindowResponse окно расписания в ответе
type ScheduleWindowResponse struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          int64                    `json:"id"`
	OwnerID     int64                    `json:"ownerId"`
	Name        string                   `json:"name"`
	Address     string                   `json:"address"`
	Capacity    int                      `json:"capacity"`
	Duration    int                      `json:"durationMinutes"`
	Price       int64                    `json:"price"`
	Description *string                  `json:"description,omitempty"`
	Schedule    []ScheduleWindowResponse `json:"schedule"`
	CreatedAt   string                   `json:"createdAt"`
	UpdatedAt   string                   `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// ToDomainService конвертирует request в domain.Service
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Address:     r.Address,
		Capacity:    r.Capacity,
		Duration:    r.Duration,
		Price:       r.Price,
		Description: r.Description,
	}
}

// ToDomainWindow конвертирует input в domain.ScheduleWindow
// Валидность weekday и времён проверяет сервис
func (in *ScheduleWindowInput) ToDomainWindow(serviceID int64) (*domain.ScheduleWindow, error) {
	weekday, err := domain.ParseWeekday(in.Weekday)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(in.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(in.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleWindow{
		ServiceID: serviceID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromDomainService конвертирует domain.Service в response
func FromDomainService(s *domain.Service, windows []*domain.ScheduleWindow) *ServiceResponse {
	schedule := make([]ScheduleWindowResponse, 0, len(windows))
	for _, w := range windows {
		schedule = append(schedule, ScheduleWindowResponse{
			Weekday:   w.Weekday.String(),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return &ServiceResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Address:     s.Address,
		Capacity:    s.Capacity,
		Duration:    s.Duration,
		Price:       s.Price,
		Description: s.Description,
		Schedule:    schedule,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}
