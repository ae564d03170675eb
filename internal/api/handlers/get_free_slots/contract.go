package get_free_slots

import (
	"context"

	listFreeSlots "github.com/m04kA/SMC-SlotService/internal/usecase/list_free_slots"
)

type ListFreeSlotsUseCase interface {
	Execute(ctx context.Context, req *listFreeSlots.Request) (*listFreeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
