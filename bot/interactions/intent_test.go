package interactions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sblbot/bot/common"
)

func TestOptionsIntent(t *testing.T) {
	t.Parallel()

	intent := NewOptionsIntent([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "id", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(9)},
		{Name: "time", Type: discordgo.ApplicationCommandOptionString, Value: "21h"},
		{Name: "player", Type: discordgo.ApplicationCommandOptionUser, Value: "12345"},
	})

	id, ok := intent.Integer("id")
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)

	s, ok := intent.String("time")
	assert.True(t, ok)
	assert.Equal(t, "21h", s)

	user, ok := intent.Snowflake("player")
	assert.True(t, ok)
	assert.Equal(t, "12345", user)

	_, ok = intent.Integer("page")
	assert.False(t, ok)
	_, ok = intent.Integer("time")
	assert.False(t, ok)
	assert.Empty(t, intent.Subcommand())
}

func TestOptionsIntent_Subcommand(t *testing.T) {
	t.Parallel()

	intent := NewOptionsIntent([]*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name: "deadline-day",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "day", Type: discordgo.ApplicationCommandOptionString, Value: "thursday"},
			},
		},
	})

	assert.Equal(t, "deadline-day", intent.Subcommand())
	day, ok := intent.String("day")
	assert.True(t, ok)
	assert.Equal(t, "thursday", day)
}

func TestArgsIntent(t *testing.T) {
	t.Parallel()

	intent := NewArgsIntent(map[string]any{"id": int64(9), "page": 2, "name": "x"})

	id, ok := intent.Integer("id")
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, 2, IntOr(intent, "page", 1))
	assert.Equal(t, 1, IntOr(intent, "missing", 1))

	_, ok = intent.String("id")
	assert.False(t, ok)
	_, ok = NewArgsIntent(nil).Integer("id")
	assert.False(t, ok)
}

func TestRequireInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantErr bool
	}{
		{name: "present", args: map[string]any{"id": int64(4)}, want: 4},
		{name: "missing", args: nil, wantErr: true},
		{name: "zero", args: map[string]any{"id": int64(0)}, wantErr: true},
		{name: "negative", args: map[string]any{"id": -3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RequireInt(NewArgsIntent(tt.args), "id")
			if tt.wantErr {
				botErr, ok := common.AsBotError(err)
				require.True(t, ok)
				assert.Contains(t, botErr.UserMessage, "`id`")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
