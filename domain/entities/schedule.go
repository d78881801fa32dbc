package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidWeekday     = errors.New("invalid weekday")
	ErrInvalidTime        = errors.New("invalid time")
	ErrInvalidDeadlineDay = errors.New("deadline day must be between Monday and Friday")
)

// Clock is a time of day
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
	"dimanche": time.Sunday, "lundi": time.Monday, "mardi": time.Tuesday,
	"mercredi": time.Wednesday, "jeudi": time.Thursday, "vendredi": time.Friday,
	"samedi": time.Saturday,
}

// ParseWeekday accepts English or French day names, any case
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
	return day, nil
}

// ValidateDeadlineDay restricts deadlines to working days
func ValidateDeadlineDay(day time.Weekday) error {
	if day < time.Monday || day > time.Friday {
		return ErrInvalidDeadlineDay
	}
	return nil
}

var strictClock = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses a strict HH:MM time
func ParseClock(s string) (Clock, error) {
	m := strictClock.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return Clock{Hour: h, Minute: min}, nil
}

var looseClock = regexp.MustCompile(`^(\d{1,2})[h:]?(\d{0,2})$`)

// ParseLooseClock accepts "21h", "20h30", "21:00" and "21"
func ParseLooseClock(s string) (Clock, error) {
	m := looseClock.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if h > 23 || min > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Clock{Hour: h, Minute: min}, nil
}

// NextWeekday returns the next occurrence of day at clock in loc, strictly
// after today: asking for today's weekday yields the same day next week.
func NextWeekday(now time.Time, loc *time.Location, day time.Weekday, clock Clock) time.Time {
	local := now.In(loc)
	days := int(day) - int(local.Weekday())
	if days <= 0 {
		days += 7
	}
	return time.Date(local.Year(), local.Month(), local.Day()+days, clock.Hour, clock.Minute, 0, 0, loc)
}
