package service

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или помечена удаленной
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrDuplicateName возвращается при попытке создать услугу с занятым именем
	ErrDuplicateName = errors.New("service.repository: service name already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("service.repository: failed to scan row")
)
