package delete_service

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
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "услуга не найдена"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, services.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id} - Access denied: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%d, user_id=%d",
		serviceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
