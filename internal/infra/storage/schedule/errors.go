package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно расписания не найдено
	ErrWindowNotFound = errors.New("schedule.repository: schedule window not found")

	// ErrDuplicateWeekday возвращается при попытке добавить второе окно
	// на ту же пару (service, weekday) — существующее окно нужно обновлять
	ErrDuplicateWeekday = errors.New("schedule.repository: window already exists for this weekday")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
