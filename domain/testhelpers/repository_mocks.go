package testhelpers

import (
	"context"
	"time"

	"sblbot/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockGuildSettingsRepository is a mock implementation of GuildSettingsRepository
type MockGuildSettingsRepository struct {
	mock.Mock
}

func (m *MockGuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockGuildSettingsRepository) ListGuildSettings(ctx context.Context) ([]*entities.GuildSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildSettings), args.Error(1)
}

// MockGuildSettingsService is a mock implementation of GuildSettingsService
type MockGuildSettingsService struct {
	mock.Mock
}

func (m *MockGuildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsService) UpdateMatchesChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return m.Called(ctx, guildID, channelID).Error(0)
}

func (m *MockGuildSettingsService) UpdateStandingsChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return m.Called(ctx, guildID, channelID).Error(0)
}

func (m *MockGuildSettingsService) UpdateMatchManagerRole(ctx context.Context, guildID int64, roleID *int64) error {
	return m.Called(ctx, guildID, roleID).Error(0)
}

func (m *MockGuildSettingsService) UpdateDeadlineDay(ctx context.Context, guildID int64, day time.Weekday) error {
	return m.Called(ctx, guildID, day).Error(0)
}

func (m *MockGuildSettingsService) UpdateDefaultSchedule(ctx context.Context, guildID int64, day time.Weekday, clock string) error {
	return m.Called(ctx, guildID, day, clock).Error(0)
}

func (m *MockGuildSettingsService) ListAnnouncementGuilds(ctx context.Context) ([]*entities.GuildSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsService) ListGuilds(ctx context.Context) ([]*entities.GuildSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildSettings), args.Error(1)
}
