package application

import (
	"time"

	"sblbot/events"
)

// WeeklyAnnouncementHour is when the weekly digest goes out on Mondays
const WeeklyAnnouncementHour = 8

// nextWeeklyRun returns the next Monday at WeeklyAnnouncementHour in loc,
// strictly after now
func nextWeeklyRun(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	days := (int(time.Monday) - int(local.Weekday()) + 7) % 7
	next := time.Date(local.Year(), local.Month(), local.Day()+days, WeeklyAnnouncementHour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(next.Year(), next.Month(), next.Day()+7, WeeklyAnnouncementHour, 0, 0, 0, loc)
	}
	return next
}

// nextMidnight returns the start of the next day in loc
func nextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// discardPublisher drops events when no publisher is wired
type discardPublisher struct{}

func (discardPublisher) Publish(events.Event) error { return nil }

func orDiscard(p events.Publisher) events.Publisher {
	if p == nil {
		return discardPublisher{}
	}
	return p
}
