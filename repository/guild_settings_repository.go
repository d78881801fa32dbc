package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sblbot/database"
	"sblbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const guildSettingsColumns = `guild_id, matches_channel_id, standings_channel_id, match_manager_role_id,
		       deadline_day, default_match_day, default_match_time`

// GuildSettingsRepository implements the GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q Queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: db.Pool}
}

// NewGuildSettingsRepositoryWithTx creates a new guild settings repository bound to a transaction
func NewGuildSettingsRepositoryWithTx(tx Queryable) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: tx}
}

func scanGuildSettings(row pgx.Row) (*entities.GuildSettings, error) {
	var (
		settings    entities.GuildSettings
		deadlineDay int16
		matchDay    int16
	)
	err := row.Scan(
		&settings.GuildID,
		&settings.MatchesChannelID,
		&settings.StandingsChannelID,
		&settings.MatchManagerRoleID,
		&deadlineDay,
		&matchDay,
		&settings.DefaultMatchTime,
	)
	if err != nil {
		return nil, err
	}
	settings.DeadlineDay = time.Weekday(deadlineDay)
	settings.DefaultMatchDay = time.Weekday(matchDay)
	return &settings, nil
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
func (r *GuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	query := `
		SELECT ` + guildSettingsColumns + `
		FROM guild_settings
		WHERE guild_id = $1
	`

	settings, err := scanGuildSettings(r.q.QueryRow(ctx, query, guildID))
	if err == nil {
		return settings, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	// Column defaults hold the default schedule
	insertQuery := `
		INSERT INTO guild_settings (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING ` + guildSettingsColumns

	settings, err = scanGuildSettings(r.q.QueryRow(ctx, insertQuery, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings for guild %d: %w", guildID, err)
	}

	return settings, nil
}

// UpdateGuildSettings updates guild settings
func (r *GuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	query := `
		UPDATE guild_settings
		SET matches_channel_id = $2,
		    standings_channel_id = $3,
		    match_manager_role_id = $4,
		    deadline_day = $5,
		    default_match_day = $6,
		    default_match_time = $7,
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		settings.GuildID,
		settings.MatchesChannelID,
		settings.StandingsChannelID,
		settings.MatchManagerRoleID,
		int16(settings.DeadlineDay),
		int16(settings.DefaultMatchDay),
		settings.DefaultMatchTime,
	)

	if err != nil {
		return fmt.Errorf("failed to update guild settings for guild %d: %w", settings.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild settings for guild %d not found", settings.GuildID)
	}

	return nil
}

// ListGuildSettings returns every stored guild ordered by guild ID
func (r *GuildSettingsRepository) ListGuildSettings(ctx context.Context) ([]*entities.GuildSettings, error) {
	query := `
		SELECT ` + guildSettingsColumns + `
		FROM guild_settings
		ORDER BY guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild settings: %w", err)
	}
	defer rows.Close()

	var all []*entities.GuildSettings
	for rows.Next() {
		settings, err := scanGuildSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guild settings: %w", err)
		}
		all = append(all, settings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guild settings: %w", err)
	}

	return all, nil
}
