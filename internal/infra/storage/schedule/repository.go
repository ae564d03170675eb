package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

const pqUniqueViolation = "23505"

// Repository репозиторий для работы с окнами недельного расписания услуг
// Инвариант "не более одного окна на (service, weekday)" обеспечивается
// уникальным ограничением таблицы, нарушение транслируется в ErrDuplicateWeekday
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет окно расписания
// Возвращает ErrDuplicateWeekday, если окно для (service, weekday) уже есть
func (r *Repository) Create(ctx context.Context, window *domain.ScheduleWindow) (*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_schedules").
		Columns(
			"service_id",
			"weekday",
			"start_time",
			"end_time",
		).
		Values(
			window.ServiceID,
			window.Weekday,
			window.StartTime,
			window.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateWeekday
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByServiceAndWeekday получает окно расписания услуги на день недели
func (r *Repository) GetByServiceAndWeekday(ctx context.Context, serviceID int64, weekday domain.Weekday) (*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWindows().
		Where(squirrel.Eq{"service_id": serviceID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceAndWeekday - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// ListByService получает все окна расписания услуги в порядке дней недели
func (r *Repository) ListByService(ctx context.Context, serviceID int64) ([]*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWindows().
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.ScheduleWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %v", ErrScanRow, err)
	}

	// Сортировка по порядку дней недели (Monday первым), не по алфавиту
	sortByWeekday(windows)

	return windows, nil
}

// Update обновляет границы существующего окна
func (r *Repository) Update(ctx context.Context, serviceID int64, weekday domain.Weekday, start, end types.TimeString) (*domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_schedules").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_id": serviceID, "weekday": weekday}).
		Suffix("RETURNING id, service_id, weekday, start_time, end_time, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// DeleteByService удаляет все окна услуги
// Используется только для пересоздания расписания услуги, против которой
// еще нет бронирований; при soft-delete услуги окна сохраняются для истории
func (r *Repository) DeleteByService(ctx context.Context, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_schedules").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByService - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByService - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func selectWindows() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"service_id",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).From("service_schedules")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.ScheduleWindow, error) {
	var window domain.ScheduleWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.ServiceID,
		&window.Weekday,
		&window.StartTime,
		&window.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

func sortByWeekday(windows []*domain.ScheduleWindow) {
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Weekday.Index() < windows[j].Weekday.Index()
	})
}
