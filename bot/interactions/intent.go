package interactions

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"sblbot/bot/common"
)

// Intent exposes the arguments of an invocation. Slash commands and decoded
// component IDs both satisfy it, so handlers never know which one they got.
type Intent interface {
	Integer(name string) (int64, bool)
	String(name string) (string, bool)
	// Snowflake returns a user, channel or role option as its ID
	Snowflake(name string) (string, bool)
	Subcommand() string
}

// OptionsIntent wraps slash command options
type OptionsIntent struct {
	subcommand string
	options    map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// NewOptionsIntent flattens a subcommand's options, if one was used
func NewOptionsIntent(options []*discordgo.ApplicationCommandInteractionDataOption) *OptionsIntent {
	intent := &OptionsIntent{options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption)}

	if len(options) == 1 && options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		intent.subcommand = options[0].Name
		options = options[0].Options
	}
	for _, opt := range options {
		intent.options[opt.Name] = opt
	}
	return intent
}

func (o *OptionsIntent) Integer(name string) (int64, bool) {
	opt, ok := o.options[name]
	if !ok {
		return 0, false
	}
	return toInt64(opt.Value)
}

func (o *OptionsIntent) String(name string) (string, bool) {
	opt, ok := o.options[name]
	if !ok {
		return "", false
	}
	s, ok := opt.Value.(string)
	return s, ok
}

func (o *OptionsIntent) Snowflake(name string) (string, bool) {
	return o.String(name)
}

func (o *OptionsIntent) Subcommand() string {
	return o.subcommand
}

// ArgsIntent exposes decoded arguments as if they were command options
type ArgsIntent struct {
	subcommand string
	args       map[string]any
}

// NewArgsIntent builds an intent from synthetic arguments
func NewArgsIntent(args map[string]any) *ArgsIntent {
	if args == nil {
		args = map[string]any{}
	}
	return &ArgsIntent{args: args}
}

// WithSubcommand sets the subcommand the intent reports
func (a *ArgsIntent) WithSubcommand(name string) *ArgsIntent {
	a.subcommand = name
	return a
}

func (a *ArgsIntent) Integer(name string) (int64, bool) {
	v, ok := a.args[name]
	if !ok {
		return 0, false
	}
	return toInt64(v)
}

func (a *ArgsIntent) String(name string) (string, bool) {
	v, ok := a.args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (a *ArgsIntent) Snowflake(name string) (string, bool) {
	return a.String(name)
}

func (a *ArgsIntent) Subcommand() string {
	return a.subcommand
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// IntOr reads an integer option with a fallback
func IntOr(intent Intent, name string, fallback int) int {
	if v, ok := intent.Integer(name); ok {
		return int(v)
	}
	return fallback
}

// RequireInt reads a mandatory positive integer option
func RequireInt(intent Intent, name string) (int, error) {
	v, ok := intent.Integer(name)
	if !ok || v <= 0 || v > math.MaxInt32 {
		return 0, common.NewUserError(
			fmt.Sprintf("Please provide a valid `%s`.", name),
			fmt.Sprintf("missing or invalid option %q", name),
		)
	}
	return int(v), nil
}
