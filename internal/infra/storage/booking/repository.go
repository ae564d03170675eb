package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
// Таблица bookings — единственный разделяемый изменяемый ресурс ядра;
// все записи в неё идут через Create внутри сериализуемой транзакции admission
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Admission обязан вызывать Create только внутри транзакции, в которой
// был выполнен OverlappingSeats — иначе проверка ёмкости подвержена гонке
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"user_id",
			"weekday",
			"booking_date",
			"start_time",
			"duration_minutes",
			"end_time",
			"seats",
			"status",
		).
		Values(
			booking.ServiceID,
			booking.UserID,
			booking.Weekday,
			booking.Date,
			booking.StartTime,
			booking.Duration,
			booking.EndTime,
			booking.Seats,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListForDay получает все бронирования услуги на день недели
// Read path генератора слотов: выборка без блокировок, сортировка по времени начала
func (r *Repository) ListForDay(ctx context.Context, serviceID int64, weekday domain.Weekday) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"service_id": serviceID, "weekday": weekday}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// OverlappingSeats возвращает сумму мест бронирований услуги на день недели,
// чьи интервалы [start_time, end_time) пересекаются с [start, end)
//
// Предикат пересечения полуинтервалов: start_time < $end AND end_time > $start.
// Это единственное место, где предикат выражен в SQL; Go-код использует types.Overlaps.
//
// excluding позволяет исключить собственное бронирование (для переноса), может быть nil.
//
// Внутри транзакции строки выбираются с FOR UPDATE: конкурирующий admission,
// пытающийся вставить пересекающееся бронирование, заблокируется до коммита.
// Случай пустой выборки (блокировать нечего) закрывается сериализуемой изоляцией
// транзакции — конфликтующая вставка завершится ошибкой сериализации и повтором
func (r *Repository) OverlappingSeats(
	ctx context.Context,
	serviceID int64,
	weekday domain.Weekday,
	start, end types.TimeString,
	excluding *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("seats").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID, "weekday": weekday}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excluding != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excluding})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: OverlappingSeats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: OverlappingSeats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var seats int
		if err := rows.Scan(&seats); err != nil {
			return 0, fmt.Errorf("%w: OverlappingSeats - scan seats: %v", ErrScanRow, err)
		}
		total += seats
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: OverlappingSeats - rows error: %v", ErrScanRow, err)
	}

	return total, nil
}

// HasAnyForService возвращает true, если против услуги есть хотя бы одно бронирование
// Используется для запрета изменения schedule-значимых полей услуги
func (r *Repository) HasAnyForService(ctx context.Context, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasAnyForService - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasAnyForService - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// MarkPassed переводит в статус passed все pending-бронирования,
// чья дата и время окончания уже прошли. Возвращает число обновленных строк
func (r *Repository) MarkPassed(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nowTime := types.NewTimeString(now)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusPassed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.LtOrEq{"end_time": nowTime},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkPassed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPassed - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPassed - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"service_id",
		"user_id",
		"weekday",
		"booking_date",
		"start_time",
		"duration_minutes",
		"end_time",
		"seats",
		"status",
		"created_at",
		"updated_at",
	).From("bookings")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.UserID,
		&booking.Weekday,
		&booking.Date,
		&booking.StartTime,
		&booking.Duration,
		&booking.EndTime,
		&booking.Seats,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
