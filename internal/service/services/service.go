package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SlotService/internal/service/services/models"
)

// Service сервис управления услугами и их расписаниями
type Service struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	granularity  int // минимальный шаг длительности в минутах
	logger       Logger
}

// NewService создает новый экземпляр сервиса услуг
func NewService(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	granularity int,
	logger Logger,
) *Service {
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	return &Service{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		granularity:  granularity,
		logger:       logger,
	}
}

// Create создает услугу вместе с окнами расписания в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for owner=%d", req.Name, req.OwnerID)

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed for service %q: %v", req.Name, err)
		return nil, err
	}

	var created *domain.Service
	var windows []*domain.ScheduleWindow

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Транзакция может быть повторена при serialization failure,
		// поэтому накопленное состояние сбрасывается на входе
		windows = windows[:0]

		var err error
		created, err = s.serviceRepo.Create(ctx, req.ToDomainService())
		if err != nil {
			return err
		}

		for _, in := range req.Schedule {
			window, err := in.ToDomainWindow(created.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			saved, err := s.scheduleRepo.Create(ctx, window)
			if err != nil {
				return err
			}
			windows = append(windows, saved)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrDuplicateName):
			s.logger.Warn("Create: service name %q already taken", req.Name)
			return nil, ErrDuplicateName
		case errors.Is(err, scheduleRepo.ErrDuplicateWeekday):
			s.logger.Warn("Create: duplicate weekday in schedule for service %q", req.Name)
			return nil, ErrDuplicateWeekday
		case errors.Is(err, ErrInvalidInput):
			return nil, err
		default:
			s.logger.Error("Create: transaction failed for service %q: %v", req.Name, err)
			return nil, fmt.Errorf("%w: Create - transaction failed: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created, windows), nil
}

// GetByID получает услугу вместе с расписанием
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	windows, err := s.scheduleRepo.ListByService(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list schedule for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list schedule: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc, windows), nil
}

// GetByOwnerID получает все услуги владельца
func (s *Service) GetByOwnerID(ctx context.Context, ownerID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("GetByOwnerID: fetching services for owner=%d", ownerID)

	svcs, err := s.serviceRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("GetByOwnerID: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetByOwnerID - repository error: %v", ErrInternal, err)
	}

	resp := &models.ServiceListResponse{
		Services: make([]*models.ServiceResponse, 0, len(svcs)),
		Total:    len(svcs),
	}
	for _, svc := range svcs {
		windows, err := s.scheduleRepo.ListByService(ctx, svc.ID)
		if err != nil {
			s.logger.Error("GetByOwnerID: failed to list schedule for service id=%d: %v", svc.ID, err)
			return nil, fmt.Errorf("%w: GetByOwnerID - failed to list schedule: %v", ErrInternal, err)
		}
		resp.Services = append(resp.Services, models.FromDomainService(svc, windows))
	}

	return resp, nil
}

// Update обновляет услугу. Nil-поля запроса не трогаются.
// Ёмкость и длительность заморожены, пока по услуге есть бронирования:
// их изменение переписало бы условия уже принятых заявок
func (s *Service) Update(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by user=%d", req.ServiceID, req.UserID)

	var updated *domain.Service

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
		if err != nil {
			return err
		}

		if !svc.IsOwnedBy(req.UserID) {
			return ErrAccessDenied
		}

		if req.Capacity != nil || req.Duration != nil {
			hasBookings, err := s.bookingRepo.HasAnyForService(ctx, req.ServiceID)
			if err != nil {
				return err
			}
			if hasBookings {
				return ErrServiceLocked
			}
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
			}
			svc.Name = *req.Name
		}
		if req.Address != nil {
			svc.Address = *req.Address
		}
		if req.Capacity != nil {
			if *req.Capacity <= 0 || *req.Capacity > domain.MaxCapacity {
				return fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, domain.MaxCapacity)
			}
			svc.Capacity = *req.Capacity
		}
		if req.Duration != nil {
			if err := s.validateDuration(*req.Duration); err != nil {
				return err
			}
			svc.Duration = *req.Duration
		}
		if req.Price != nil {
			if *req.Price < 0 {
				return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
			}
			svc.Price = *req.Price
		}
		if req.Description != nil {
			svc.Description = req.Description
		}

		if err := s.serviceRepo.Update(ctx, svc); err != nil {
			return err
		}

		updated = svc
		return nil
	})
	if err != nil {
		return nil, s.mapUpdateError(err, req.ServiceID)
	}

	windows, err := s.scheduleRepo.ListByService(ctx, req.ServiceID)
	if err != nil {
		s.logger.Error("Update: failed to list schedule for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Update - failed to list schedule: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", req.ServiceID)
	return models.FromDomainService(updated, windows), nil
}

// Delete мягко удаляет услугу и убирает её расписание
// История бронирований сохраняется
func (s *Service) Delete(ctx context.Context, serviceID, userID int64) error {
	s.logger.Info("Delete: deleting service id=%d by user=%d", serviceID, userID)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		svc, err := s.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}

		if !svc.IsOwnedBy(userID) {
			return ErrAccessDenied
		}

		if err := s.serviceRepo.SoftDelete(ctx, serviceID); err != nil {
			return err
		}

		return s.scheduleRepo.DeleteByService(ctx, serviceID)
	})
	if err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Delete: service id=%d not found", serviceID)
			return ErrServiceNotFound
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Delete: access denied for user=%d to service id=%d", userID, serviceID)
			return ErrAccessDenied
		default:
			s.logger.Error("Delete: transaction failed for service id=%d: %v", serviceID, err)
			return fmt.Errorf("%w: Delete - transaction failed: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted service id=%d", serviceID)
	return nil
}

// AddSchedule добавляет окно расписания на день недели
func (s *Service) AddSchedule(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ServiceResponse, error) {
	s.logger.Info("AddSchedule: adding window for service id=%d, weekday=%s", req.ServiceID, req.Weekday)

	window, err := s.buildWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.scheduleRepo.Create(ctx, window); err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateWeekday) {
			s.logger.Warn("AddSchedule: window already exists for service id=%d, weekday=%s", req.ServiceID, req.Weekday)
			return nil, ErrDuplicateWeekday
		}
		s.logger.Error("AddSchedule: repository error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: AddSchedule - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, req.ServiceID)
}

// UpdateSchedule изменяет существующее окно расписания
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateSchedule: updating window for service id=%d, weekday=%s", req.ServiceID, req.Weekday)

	window, err := s.buildWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.scheduleRepo.Update(ctx, req.ServiceID, window.Weekday, window.StartTime, window.EndTime); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("UpdateSchedule: window not found for service id=%d, weekday=%s", req.ServiceID, req.Weekday)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, req.ServiceID)
}

// buildWindow проверяет права владельца и собирает валидное окно из запроса
func (s *Service) buildWindow(ctx context.Context, req *models.UpsertScheduleRequest) (*domain.ScheduleWindow, error) {
	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !svc.IsOwnedBy(req.UserID) {
		return nil, ErrAccessDenied
	}

	in := models.ScheduleWindowInput{
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	window, err := in.ToDomainWindow(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !window.StartTime.IsBefore(window.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	return window, nil
}

func (s *Service) validateCreate(req *models.CreateServiceRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if req.Capacity <= 0 || req.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, domain.MaxCapacity)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.validateDuration(req.Duration); err != nil {
		return err
	}

	for _, in := range req.Schedule {
		window, err := in.ToDomainWindow(0)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !window.StartTime.IsBefore(window.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
		}
	}

	return nil
}

func (s *Service) validateDuration(duration int) error {
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidDuration)
	}
	if duration%s.granularity != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidDuration, s.granularity)
	}
	return nil
}

func (s *Service) mapUpdateError(err error, serviceID int64) error {
	switch {
	case errors.Is(err, serviceRepo.ErrServiceNotFound):
		s.logger.Warn("Update: service id=%d not found", serviceID)
		return ErrServiceNotFound
	case errors.Is(err, ErrAccessDenied):
		s.logger.Warn("Update: access denied to service id=%d", serviceID)
		return ErrAccessDenied
	case errors.Is(err, ErrServiceLocked):
		s.logger.Warn("Update: service id=%d has bookings, capacity/duration locked", serviceID)
		return ErrServiceLocked
	case errors.Is(err, serviceRepo.ErrDuplicateName):
		return ErrDuplicateName
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDuration):
		return err
	default:
		s.logger.Error("Update: transaction failed for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}
}
