package services

import (
	"context"
	"fmt"
	"time"

	"sblbot/domain/entities"
	"sblbot/domain/interfaces"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	guildSettingsRepo interfaces.GuildSettingsRepository
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(guildSettingsRepo interfaces.GuildSettingsRepository) interfaces.GuildSettingsService {
	return &guildSettingsService{
		guildSettingsRepo: guildSettingsRepo,
	}
}

// GetOrCreateSettings retrieves guild settings or creates default ones if not found
func (s *guildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild settings: %w", err)
	}

	return settings, nil
}

// update loads the settings, applies fn and saves the result
func (s *guildSettingsService) update(ctx context.Context, guildID int64, fn func(*entities.GuildSettings)) error {
	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	fn(settings)

	if err := s.guildSettingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateMatchesChannel updates the matches channel for a guild
func (s *guildSettingsService) UpdateMatchesChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) {
		gs.MatchesChannelID = channelID
	})
}

// UpdateStandingsChannel updates the standings channel for a guild
func (s *guildSettingsService) UpdateStandingsChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) {
		gs.StandingsChannelID = channelID
	})
}

// UpdateMatchManagerRole updates the match manager role for a guild
func (s *guildSettingsService) UpdateMatchManagerRole(ctx context.Context, guildID int64, roleID *int64) error {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) {
		gs.MatchManagerRoleID = roleID
	})
}

// UpdateDeadlineDay updates the scheduling deadline for a guild
func (s *guildSettingsService) UpdateDeadlineDay(ctx context.Context, guildID int64, day time.Weekday) error {
	if err := entities.ValidateDeadlineDay(day); err != nil {
		return err
	}

	return s.update(ctx, guildID, func(gs *entities.GuildSettings) {
		gs.DeadlineDay = day
	})
}

// UpdateDefaultSchedule updates the fallback match slot for a guild
func (s *guildSettingsService) UpdateDefaultSchedule(ctx context.Context, guildID int64, day time.Weekday, clock string) error {
	if day < time.Sunday || day > time.Saturday {
		return entities.ErrInvalidWeekday
	}
	parsed, err := entities.ParseClock(clock)
	if err != nil {
		return err
	}

	return s.update(ctx, guildID, func(gs *entities.GuildSettings) {
		gs.DefaultMatchDay = day
		gs.DefaultMatchTime = parsed.String()
	})
}

// ListGuilds returns every configured guild
func (s *guildSettingsService) ListGuilds(ctx context.Context) ([]*entities.GuildSettings, error) {
	all, err := s.guildSettingsRepo.ListGuildSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild settings: %w", err)
	}
	return all, nil
}

// ListAnnouncementGuilds returns guilds with at least one announcement channel
func (s *guildSettingsService) ListAnnouncementGuilds(ctx context.Context) ([]*entities.GuildSettings, error) {
	all, err := s.ListGuilds(ctx)
	if err != nil {
		return nil, err
	}

	guilds := make([]*entities.GuildSettings, 0, len(all))
	for _, gs := range all {
		if gs.HasAnnouncementChannel() {
			guilds = append(guilds, gs)
		}
	}
	return guilds, nil
}
