package repository

import (
	"context"
	"testing"
	"time"

	"sblbot/domain/entities"
	"sblbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildSettingsRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates defaults", func(t *testing.T) {
		settings, err := repo.GetOrCreateGuildSettings(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, settings)

		assert.Equal(t, int64(1001), settings.GuildID)
		assert.Nil(t, settings.MatchesChannelID)
		assert.Nil(t, settings.StandingsChannelID)
		assert.Nil(t, settings.MatchManagerRoleID)
		assert.Equal(t, entities.DefaultDeadlineDay, settings.DeadlineDay)
		assert.Equal(t, entities.DefaultMatchDay, settings.DefaultMatchDay)
		assert.Equal(t, entities.DefaultMatchTime, settings.DefaultMatchTime)
	})

	t.Run("second call returns the same row", func(t *testing.T) {
		first, err := repo.GetOrCreateGuildSettings(ctx, 1002)
		require.NoError(t, err)
		second, err := repo.GetOrCreateGuildSettings(ctx, 1002)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestGuildSettingsRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildSettingsRepository(testDB.DB)
	ctx := context.Background()

	settings, err := repo.GetOrCreateGuildSettings(ctx, 2001)
	require.NoError(t, err)

	matches := int64(111)
	role := int64(333)
	settings.MatchesChannelID = &matches
	settings.MatchManagerRoleID = &role
	settings.DeadlineDay = time.Tuesday
	settings.DefaultMatchDay = time.Saturday
	settings.DefaultMatchTime = "20:30"
	require.NoError(t, repo.UpdateGuildSettings(ctx, settings))

	reloaded, err := repo.GetOrCreateGuildSettings(ctx, 2001)
	require.NoError(t, err)
	require.NotNil(t, reloaded.MatchesChannelID)
	assert.Equal(t, matches, *reloaded.MatchesChannelID)
	assert.Nil(t, reloaded.StandingsChannelID)
	assert.Equal(t, role, *reloaded.MatchManagerRoleID)
	assert.Equal(t, time.Tuesday, reloaded.DeadlineDay)
	assert.Equal(t, time.Saturday, reloaded.DefaultMatchDay)
	assert.Equal(t, "20:30", reloaded.DefaultMatchTime)

	t.Run("unknown guild", func(t *testing.T) {
		err := repo.UpdateGuildSettings(ctx, entities.NewGuildSettings(9999))
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("deadline day constraint", func(t *testing.T) {
		reloaded.DeadlineDay = time.Weekday(9)
		assert.Error(t, repo.UpdateGuildSettings(ctx, reloaded))
	})
}

func TestGuildSettingsRepository_List(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildSettingsRepository(testDB.DB)
	ctx := context.Background()

	all, err := repo.ListGuildSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, id := range []int64{30, 10, 20} {
		_, err := repo.GetOrCreateGuildSettings(ctx, id)
		require.NoError(t, err)
	}

	all, err = repo.ListGuildSettings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(10), all[0].GuildID)
	assert.Equal(t, int64(20), all[1].GuildID)
	assert.Equal(t, int64(30), all[2].GuildID)
}
