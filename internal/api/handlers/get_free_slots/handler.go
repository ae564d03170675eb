package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	listFreeSlots "github.com/m04kA/SMC-SlotService/internal/usecase/list_free_slots"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingWeekday   = "не указан день недели"
	msgInvalidInput     = "некорректные параметры запроса"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase ListFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/free-slots?weekday=monday
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/free-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	weekday := r.URL.Query().Get("weekday")
	if weekday == "" {
		h.logger.Warn("GET /services/{id}/free-slots - Missing weekday: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingWeekday)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listFreeSlots.Request{
		ServiceID: serviceID,
		Weekday:   weekday,
	})
	if err != nil {
		switch {
		case errors.Is(err, listFreeSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/free-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, listFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/free-slots - Invalid input: service_id=%d, weekday=%s",
				serviceID, weekday)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /services/{id}/free-slots - Failed to list slots: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/free-slots - Slots retrieved successfully: service_id=%d, weekday=%s, count=%d",
		serviceID, weekday, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
