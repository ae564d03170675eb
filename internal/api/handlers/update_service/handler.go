package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/service/services"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
	msgServiceLocked      = "по услуге уже есть бронирования, ёмкость и длительность изменить нельзя"
	msgInvalidInput       = "некорректные параметры услуги"
	msgInvalidDuration    = "длительность должна быть положительной и кратной шагу расписания"
	msgDuplicateName      = "услуга с таким названием уже существует"
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

// Handle PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(serviceID, userID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, services.ErrAccessDenied):
			h.logger.Warn("PUT /services/{id} - Access denied: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, services.ErrServiceLocked):
			h.logger.Warn("PUT /services/{id} - Service locked: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgServiceLocked)

		case errors.Is(err, services.ErrDuplicateName):
			h.logger.Warn("PUT /services/{id} - Duplicate name: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, services.ErrInvalidDuration):
			h.logger.Warn("PUT /services/{id} - Invalid duration: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /services/{id} - Failed to update service: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated successfully: service_id=%d, user_id=%d",
		serviceID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
