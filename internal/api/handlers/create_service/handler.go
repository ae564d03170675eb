package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/service/services"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры услуги"
	msgInvalidDuration    = "длительность должна быть положительной и кратной шагу расписания"
	msgInvalidTimeRange   = "время начала окна должно быть раньше времени окончания"
	msgDuplicateName      = "услуга с таким названием уже существует"
	msgDuplicateWeekday   = "окно расписания на этот день недели уже задано"
)

type Handler struct {
	service ServiceManager
	logger  Logger
}

func NewHandler(service ServiceManager, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateName):
			h.logger.Warn("POST /services - Duplicate name: owner_id=%d, name=%q", userID, req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, services.ErrDuplicateWeekday):
			h.logger.Warn("POST /services - Duplicate weekday in schedule: owner_id=%d", userID)
			handlers.RespondConflict(w, msgDuplicateWeekday)

		case errors.Is(err, services.ErrInvalidDuration):
			h.logger.Warn("POST /services - Invalid duration: owner_id=%d, duration=%d", userID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, services.ErrInvalidTimeRange):
			h.logger.Warn("POST /services - Invalid time range in schedule: owner_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: owner_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /services - Failed to create service: owner_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%d, owner_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
