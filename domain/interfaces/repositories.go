package interfaces

import (
	"context"

	"sblbot/domain/entities"
)

// GuildSettingsRepository defines the interface for guild settings data access
type GuildSettingsRepository interface {
	// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
	GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)

	// UpdateGuildSettings updates guild settings
	UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error

	// ListGuildSettings returns every stored guild, ordered by guild ID
	ListGuildSettings(ctx context.Context) ([]*entities.GuildSettings, error)
}
