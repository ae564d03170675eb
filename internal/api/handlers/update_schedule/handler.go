package update_schedule

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
	msgServiceNotFound    = "услуга не найдена"
	msgWindowNotFound     = "окно расписания на этот день недели не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeRange   = "время начала окна должно быть раньше времени окончания"
	msgInvalidInput       = "некорректные параметры окна расписания"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
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

// Handle PUT /api/v1/services/{serviceId}/schedule/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]
	weekday := vars["weekday"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), &models.UpsertScheduleRequest{
		ServiceID: serviceID,
		UserID:    userID,
		Weekday:   weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, services.ErrWindowNotFound):
			h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Window not found: service_id=%d, weekday=%s",
				serviceID, weekday)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, services.ErrAccessDenied):
			h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Access denied: service_id=%d, user_id=%d",
				serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, services.ErrInvalidTimeRange):
			h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Invalid time range: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id}/schedule/{weekday} - Invalid input: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /services/{id}/schedule/{weekday} - Failed to update window: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id}/schedule/{weekday} - Window updated successfully: service_id=%d, weekday=%s",
		serviceID, weekday)
	handlers.RespondJSON(w, http.StatusOK, result)
}
