package update_schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

type ServiceManager interface {
	UpdateSchedule(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
