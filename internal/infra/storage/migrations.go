// Package storage содержит bootstrap схемы БД
package storage

import (
	"context"
	"database/sql"
)

// Время слотов хранится строками "HH:MM": лексикографический порядок таких строк
// совпадает с хронологическим, поэтому предикат пересечения интервалов
// (start_time < X AND end_time > Y) работает напрямую по varchar-колонкам
const schemaSQL = `
CREATE TABLE IF NOT EXISTS services (
	id BIGSERIAL PRIMARY KEY,
	owner_id BIGINT NOT NULL,
	name VARCHAR(255) UNIQUE NOT NULL,
	address VARCHAR(255) NOT NULL DEFAULT '',
	capacity INT NOT NULL DEFAULT 1 CHECK (capacity > 0),
	duration_minutes INT NOT NULL DEFAULT 60 CHECK (duration_minutes > 0 AND duration_minutes % 30 = 0),
	price BIGINT NOT NULL DEFAULT 0,
	description TEXT,
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS service_schedules (
	id BIGSERIAL PRIMARY KEY,
	service_id BIGINT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
	weekday VARCHAR(9) NOT NULL,
	start_time VARCHAR(5) NOT NULL,
	end_time VARCHAR(5) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT unique_service_weekday UNIQUE (service_id, weekday),
	CONSTRAINT schedule_time_order CHECK (start_time < end_time)
);

CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	service_id BIGINT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL,
	weekday VARCHAR(9) NOT NULL,
	booking_date DATE NOT NULL,
	start_time VARCHAR(5) NOT NULL,
	duration_minutes INT NOT NULL CHECK (duration_minutes > 0),
	end_time VARCHAR(5) NOT NULL,
	seats INT NOT NULL CHECK (seats > 0),
	status VARCHAR(15) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT booking_time_order CHECK (start_time < end_time)
);

CREATE INDEX IF NOT EXISTS idx_bookings_service_weekday_start ON bookings(service_id, weekday, start_time);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_schedules_service_weekday ON service_schedules(service_id, weekday);
`

// Migrate создает схему БД, если её еще нет
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
