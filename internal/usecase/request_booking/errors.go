package request_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или удалена
	ErrServiceNotFound = errors.New("request_booking: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInvalidDuration возвращается, когда длительность неположительна
	// или не кратна канонической длительности услуги
	ErrInvalidDuration = errors.New("request_booking: duration must be a positive multiple of service duration")

	// ErrInvalidTimeRange возвращается, когда время окончания выходит
	// за границу суток (start + duration >= 24:00)
	ErrInvalidTimeRange = errors.New("request_booking: invalid time range")

	// ErrCapacityExceeded возвращается, когда запрошенные места сами по себе
	// превышают общую ёмкость услуги — запрос невыполним ни при каком состоянии
	ErrCapacityExceeded = errors.New("request_booking: seats exceed service capacity")

	// ErrServiceClosed возвращается, когда интервал не содержится целиком
	// ни в одном окне расписания услуги на этот день недели
	ErrServiceClosed = errors.New("request_booking: service is closed at that time")

	// ErrInsufficientCapacity возвращается, когда с учетом существующих
	// пересекающихся бронирований мест не хватает. Временная ошибка:
	// запрос на другой слот может пройти
	ErrInsufficientCapacity = errors.New("request_booking: not enough capacity for this time slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
