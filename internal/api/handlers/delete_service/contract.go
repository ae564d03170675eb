package delete_service

import "context"

type ServiceManager interface {
	Delete(ctx context.Context, serviceID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
