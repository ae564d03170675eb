package services

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет услугой
	ErrAccessDenied = errors.New("access denied")

	// ErrServiceLocked возвращается при попытке изменить ёмкость или
	// длительность услуги, по которой уже есть бронирования
	ErrServiceLocked = errors.New("service has bookings, capacity and duration are locked")

	// ErrDuplicateName возвращается при попытке создать услугу с занятым именем
	ErrDuplicateName = errors.New("service name already taken")

	// ErrDuplicateWeekday возвращается при попытке добавить второе окно
	// расписания на тот же день недели
	ErrDuplicateWeekday = errors.New("schedule window already exists for this weekday")

	// ErrWindowNotFound возвращается, когда окно расписания не найдено
	ErrWindowNotFound = errors.New("schedule window not found")

	// ErrInvalidTimeRange возвращается, когда начало окна не раньше конца
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidDuration возвращается, когда длительность не кратна гранулярности
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
