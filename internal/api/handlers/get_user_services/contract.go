package get_user_services

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

type ServiceManager interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
