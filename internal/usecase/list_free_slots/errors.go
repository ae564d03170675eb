package list_free_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или удалена
	ErrServiceNotFound = errors.New("list_free_slots: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_free_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_free_slots: internal error")
)
