package request_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// resolveDuration возвращает длительность бронирования в минутах
// Если длительность не указана, используется каноническая длительность услуги;
// иначе она обязана быть положительным целым кратным длительности услуги
func resolveDuration(requested *int, serviceDuration int) (int, error) {
	if requested == nil {
		return serviceDuration, nil
	}

	d := *requested
	if d <= 0 {
		return 0, fmt.Errorf("%w: got %dm", ErrInvalidDuration, d)
	}

	if d%serviceDuration != 0 {
		return 0, fmt.Errorf("%w: got %dm, service duration %dm", ErrInvalidDuration, d, serviceDuration)
	}

	return d, nil
}
