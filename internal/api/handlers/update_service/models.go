package update_service

import (
	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

// UpdateServiceRequest HTTP request model
// Отсутствующие поля остаются без изменений
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	Capacity        *int    `json:"capacity,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Price           *int64  `json:"price,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServiceRequest) ToServiceRequest(serviceID, userID int64) *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		ServiceID:   serviceID,
		UserID:      userID,
		Name:        r.Name,
		Address:     r.Address,
		Capacity:    r.Capacity,
		Duration:    r.DurationMinutes,
		Price:       r.Price,
		Description: r.Description,
	}
}
