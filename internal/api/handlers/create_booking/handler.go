package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	requestBooking "github.com/m04kA/SMC-SlotService/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidInput         = "некорректные параметры бронирования"
	msgInvalidDuration      = "длительность должна быть положительной и кратной длительности услуги"
	msgInvalidTimeRange     = "слот выходит за пределы суток"
	msgCapacityExceeded     = "запрошено больше мест, чем вмещает услуга"
	msgServiceClosed        = "услуга не работает в выбранное время"
	msgInsufficientCapacity = "недостаточно свободных мест на выбранное время"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, requestBooking.ErrInsufficientCapacity):
			h.logger.Warn("POST /bookings - Insufficient capacity: user_id=%d, service_id=%d, start=%s",
				userID, req.ServiceID, req.StartTime)
			handlers.RespondConflict(w, msgInsufficientCapacity)

		case errors.Is(err, requestBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, requestBooking.ErrServiceClosed):
			h.logger.Warn("POST /bookings - Service closed: user_id=%d, service_id=%d, start=%s",
				userID, req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgServiceClosed)

		case errors.Is(err, requestBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Seats exceed capacity: user_id=%d, service_id=%d, seats=%d",
				userID, req.ServiceID, req.Seats)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, requestBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, requestBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, service_id=%d, start=%s",
				userID, req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, service_id=%d",
		result.ID, userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
