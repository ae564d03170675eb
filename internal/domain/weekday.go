package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Weekday represents a day of the recurring weekly schedule
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays all weekdays in schedule order, Monday first
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ErrInvalidWeekday возвращается при неизвестном дне недели
var ErrInvalidWeekday = errors.New("domain: invalid weekday")

// ParseWeekday парсит день недели из строки
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Weekdays {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// IsValid возвращает true для известного дня недели
func (w Weekday) IsValid() bool {
	_, err := ParseWeekday(string(w))
	return err == nil
}

// String возвращает строковое представление
func (w Weekday) String() string {
	return string(w)
}

// Index возвращает порядковый номер дня, Monday = 0 ... Sunday = 6
func (w Weekday) Index() int {
	for i, known := range Weekdays {
		if w == known {
			return i
		}
	}
	return 0
}

// WeekdayFromTime возвращает день недели для календарной даты
func WeekdayFromTime(t time.Time) Weekday {
	// time.Weekday считает с воскресенья, наша неделя начинается с понедельника
	return Weekdays[(int(t.Weekday())+6)%7]
}

// NextDateFrom возвращает ближайшую календарную дату (сегодня или позже),
// чей день недели совпадает с w. Если совпадает сегодняшний день, но startTime
// уже наступило, дата сдвигается на неделю вперед.
//
// Дата — производное поле для отображения; ёмкость считается по (weekday, time),
// а не по календарной дате
func (w Weekday) NextDateFrom(now time.Time, startTime types.TimeString) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayIdx := WeekdayFromTime(now).Index()

	deltaDays := (w.Index() - todayIdx + 7) % 7
	candidate := today.AddDate(0, 0, deltaDays)

	if deltaDays == 0 && !startTime.IsZero() {
		nowTime := types.NewTimeString(now)
		if !startTime.IsAfter(nowTime) {
			candidate = candidate.AddDate(0, 0, 7)
		}
	}

	return candidate
}
