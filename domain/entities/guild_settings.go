package entities

import "time"

// Defaults for a guild that never ran the config command
const (
	DefaultDeadlineDay = time.Thursday
	DefaultMatchDay    = time.Sunday
	DefaultMatchTime   = "21:00"
)

// GuildSettings represents per-guild configuration settings
type GuildSettings struct {
	GuildID            int64        `db:"guild_id"`
	MatchesChannelID   *int64       `db:"matches_channel_id"`    // Nullable - channel for weekly fixtures
	StandingsChannelID *int64       `db:"standings_channel_id"`  // Nullable - channel for weekly standings
	MatchManagerRoleID *int64       `db:"match_manager_role_id"` // Nullable - role allowed to manage matches (NULL = everyone)
	DeadlineDay        time.Weekday `db:"deadline_day"`
	DefaultMatchDay    time.Weekday `db:"default_match_day"`
	DefaultMatchTime   string       `db:"default_match_time"` // HH:MM, league time
}

// NewGuildSettings returns settings with the default schedule
func NewGuildSettings(guildID int64) *GuildSettings {
	return &GuildSettings{
		GuildID:          guildID,
		DeadlineDay:      DefaultDeadlineDay,
		DefaultMatchDay:  DefaultMatchDay,
		DefaultMatchTime: DefaultMatchTime,
	}
}

// HasMatchesChannel checks if a matches channel is configured
func (gs *GuildSettings) HasMatchesChannel() bool {
	return gs.MatchesChannelID != nil && *gs.MatchesChannelID > 0
}

// HasStandingsChannel checks if a standings channel is configured
func (gs *GuildSettings) HasStandingsChannel() bool {
	return gs.StandingsChannelID != nil && *gs.StandingsChannelID > 0
}

// HasAnnouncementChannel checks if the weekly announcement has anywhere to go
func (gs *GuildSettings) HasAnnouncementChannel() bool {
	return gs.HasMatchesChannel() || gs.HasStandingsChannel()
}

// HasMatchManagerRole checks if match management is restricted to a role
func (gs *GuildSettings) HasMatchManagerRole() bool {
	return gs.MatchManagerRoleID != nil && *gs.MatchManagerRoleID > 0
}

// DeadlineCheckDay is the day after the deadline, when unscheduled games get the default date
func (gs *GuildSettings) DeadlineCheckDay() time.Weekday {
	return (gs.DeadlineDay + 1) % 7
}

// IsDeadlineCheckDay reports whether now, in loc, falls on the check day
func (gs *GuildSettings) IsDeadlineCheckDay(now time.Time, loc *time.Location) bool {
	return now.In(loc).Weekday() == gs.DeadlineCheckDay()
}

// DefaultKickoff is the next default match slot strictly after today
func (gs *GuildSettings) DefaultKickoff(now time.Time, loc *time.Location) (time.Time, error) {
	clock, err := ParseClock(gs.DefaultMatchTime)
	if err != nil {
		return time.Time{}, err
	}
	return NextWeekday(now, loc, gs.DefaultMatchDay, clock), nil
}
