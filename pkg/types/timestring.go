package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeString время в формате "HH:MM" (без секунд)
// Используется для хранения времени слотов и бронирований.
// Секунды и доли секунды всегда отбрасываются при создании.
//
// Формат выбран строковым сознательно: лексикографическое сравнение
// строк "HH:MM" совпадает с хронологическим, что позволяет сравнивать
// значения напрямую в SQL (start_time < $1 и т.п.)
type TimeString string

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за границу суток (>= 24:00)
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

const timeLayout = "15:04"

// NewTimeString создает TimeString из time.Time, отбрасывая секунды
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку времени
// Принимает "HH:MM" и "HH:MM:SS" (секунды отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)

	// Отбрасываем секунды, если они есть
	if len(s) > 5 {
		s = s[:5]
	}

	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}

	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат "HH:MM"
// Ровно пять символов с ведущими нулями: без этого ломается
// лексикографический порядок ("9:00" > "18:00")
func (t TimeString) Validate() error {
	if len(t) != 5 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от полуночи
// Значение должно быть валидным (см. Validate)
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время через minutes минут в пределах одних суток
// Если результат достигает или переходит границу 24:00, возвращает ErrTimeOutOfRange:
// бронирование не может пересекать полночь
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	total := t.Minutes() + minutes
	if total >= 24*60 || total < 0 {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfRange, t, minutes)
	}

	return NewTimeStringFromMinutes(total)
}

// Overlaps проверяет пересечение двух полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Пересечение есть тогда и только тогда, когда aStart < bEnd И bStart < aEnd.
// Граничащие интервалы (конец одного равен началу другого) НЕ пересекаются.
//
// Это единственная Go-реализация предиката пересечения: и подсчёт занятых мест,
// и генерация свободных слотов обязаны использовать её, а не дублировать сравнение
func Overlaps(aStart, aEnd, bStart, bEnd TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
