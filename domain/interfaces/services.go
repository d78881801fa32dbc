package interfaces

import (
	"context"
	"time"

	"sblbot/domain/entities"
)

// GuildSettingsService defines the interface for guild settings operations
type GuildSettingsService interface {
	// GetOrCreateSettings retrieves guild settings or creates default ones if not found
	GetOrCreateSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)

	// UpdateMatchesChannel sets the weekly fixtures channel, nil disables it
	UpdateMatchesChannel(ctx context.Context, guildID int64, channelID *int64) error

	// UpdateStandingsChannel sets the weekly standings channel, nil disables it
	UpdateStandingsChannel(ctx context.Context, guildID int64, channelID *int64) error

	// UpdateMatchManagerRole restricts match management to a role, nil lifts the restriction
	UpdateMatchManagerRole(ctx context.Context, guildID int64, roleID *int64) error

	// UpdateDeadlineDay sets the scheduling deadline, Monday through Friday only
	UpdateDeadlineDay(ctx context.Context, guildID int64, day time.Weekday) error

	// UpdateDefaultSchedule sets the fallback slot used for games left unscheduled
	UpdateDefaultSchedule(ctx context.Context, guildID int64, day time.Weekday, clock string) error

	// ListAnnouncementGuilds returns guilds with a matches or standings channel
	ListAnnouncementGuilds(ctx context.Context) ([]*entities.GuildSettings, error)

	// ListGuilds returns every configured guild
	ListGuilds(ctx context.Context) ([]*entities.GuildSettings, error)
}
