package add_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/service/services"
	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
	msgDuplicateWeekday   = "окно расписания на этот день недели уже задано"
	msgInvalidTimeRange   = "время начала окна должно быть раньше времени окончания"
	msgInvalidInput       = "некорректные параметры окна расписания"
)

// AddScheduleRequest HTTP request model
type AddScheduleRequest struct {
	Weekday   string `json:"weekday"`   // "monday" ... "sunday"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

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

// Handle POST /api/v1/services/{serviceId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/schedule - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSchedule(r.Context(), &models.UpsertScheduleRequest{
		ServiceID: serviceID,
		UserID:    userID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/schedule - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, services.ErrAccessDenied):
			h.logger.Warn("POST /services/{id}/schedule - Access denied: service_id=%d, user_id=%d",
				serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, services.ErrDuplicateWeekday):
			h.logger.Warn("POST /services/{id}/schedule - Duplicate weekday: service_id=%d, weekday=%s",
				serviceID, req.Weekday)
			handlers.RespondConflict(w, msgDuplicateWeekday)

		case errors.Is(err, services.ErrInvalidTimeRange):
			h.logger.Warn("POST /services/{id}/schedule - Invalid time range: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/schedule - Invalid input: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /services/{id}/schedule - Failed to add window: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/schedule - Window added successfully: service_id=%d, weekday=%s",
		serviceID, req.Weekday)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
