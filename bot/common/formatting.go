package common

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	_ "time/tzdata" // Europe/Paris on hosts without zoneinfo
)

// DefaultProgressLength is the bar width used when none is given
const DefaultProgressLength = 10

// ProgressBar renders percent (clamped to [0,100]) as a bar of length cells.
// Filled cells are round(percent/100*length).
func ProgressBar(percent float64, length int) string {
	if length <= 0 {
		length = DefaultProgressLength
	}
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(math.Round(percent / 100 * float64(length)))
	if filled > length {
		filled = length
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// Truncate shortens s to at most limit runes, ending with the truncation marker
// when anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	markerLen := utf8.RuneCountInString(TruncationMarker)
	if limit <= markerLen {
		return string([]rune(TruncationMarker)[:max(limit, 0)])
	}

	runes := []rune(s)
	return string(runes[:limit-markerLen]) + TruncationMarker
}

// TruncateField enforces the embed field value limit
func TruncateField(s string) string {
	return Truncate(s, MaxFieldLength)
}

// NonEmpty replaces blank text with the placeholder. Discord rejects empty field values.
func NonEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// OrPlaceholder dereferences an optional string
func OrPlaceholder(s *string) string {
	if s == nil {
		return Placeholder
	}
	return NonEmpty(*s)
}

// IntOr dereferences an optional int
func IntOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// IntOrPlaceholder renders an optional int
func IntOrPlaceholder(v *int) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", *v)
}

// Percent formats a ratio with one decimal, "0.0%" when the total is zero
func Percent(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

var displayLocation = loadDisplayLocation()

// DisplayLocation is the league time zone used for every rendered date
func DisplayLocation() *time.Location {
	return displayLocation
}

func loadDisplayLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an optional upstream date as DD-MM-YYYY in league time
func FormatDate(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Placeholder
	}
	t, ok := ParseDate(*s)
	if !ok {
		return TruncateField(*s)
	}
	return t.In(displayLocation).Format("02-01-2006")
}

// FormatDateTime renders an optional upstream timestamp with its time of day
func FormatDateTime(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Placeholder
	}
	t, ok := ParseDate(*s)
	if !ok {
		return TruncateField(*s)
	}
	return t.In(displayLocation).Format("02-01-2006 15:04")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp
// Style options: t (short time), T (long time), d (short date), D (long date),
// f (short date/time), F (long date/time), R (relative time)
func FormatDiscordTimestamp(t time.Time, style string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), style)
}

// FormatResponseTime renders an API latency for embed footers
func FormatResponseTime(d time.Duration) string {
	return fmt.Sprintf("Fetched in %dms", d.Milliseconds())
}
