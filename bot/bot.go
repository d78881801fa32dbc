package bot

import (
	"context"
	"fmt"

	"sblbot/bot/common"
	"sblbot/bot/features/announcements"
	"sblbot/bot/features/divisions"
	"sblbot/bot/features/matches"
	"sblbot/bot/features/proposals"
	"sblbot/bot/features/roster"
	"sblbot/bot/features/seasons"
	"sblbot/bot/features/settings"
	"sblbot/bot/features/standings"
	"sblbot/bot/features/status"
	"sblbot/bot/features/teams"
	"sblbot/bot/interactions"
	"sblbot/domain/interfaces"
	"sblbot/events"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Empty registers commands globally
}

// Deps are the collaborators the features render with
type Deps struct {
	API       *sblapi.Client
	Settings  interfaces.GuildSettingsService
	Publisher events.Publisher
	Observer  interactions.InteractionObserver
	Weekly    settings.WeeklyRunner   // nil when the weekly announcement is disabled
	Deadline  settings.DeadlineRunner // nil when the deadline check is disabled
}

// Session is the part of a discordgo session the features talk to
type Session interface {
	common.DirectMessenger
	status.GuildSource
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	poster   *announcements.Poster
	registry *interactions.Registry
}

// New creates the Discord session without connecting it
func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	return &Bot{
		config:  config,
		session: dg,
		poster:  announcements.NewPoster(dg, standings.NewImageGenerator()),
	}, nil
}

// Poster posts the scheduled job output through this bot's session
func (b *Bot) Poster() *announcements.Poster {
	return b.poster
}

// BuildRegistry loads every feature's commands. A duplicate name is fatal.
func BuildRegistry(deps Deps, session Session) (*interactions.Registry, error) {
	registry := interactions.NewRegistry()
	err := registry.Load(
		seasons.NewFeature(deps.API),
		divisions.NewFeature(deps.API),
		matches.NewFeature(deps.API),
		teams.NewFeature(deps.API),
		roster.NewFeature(deps.API),
		proposals.NewFeature(deps.API, deps.Settings, session, deps.Publisher),
		settings.NewFeature(deps.Settings, deps.Weekly, deps.Deadline),
		status.NewFeature(deps.API, session),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}
	return registry, nil
}

// Start registers the handlers, opens the gateway and publishes the commands
func (b *Bot) Start(ctx context.Context, deps Deps) error {
	registry, err := BuildRegistry(deps, b.session)
	if err != nil {
		return err
	}
	b.registry = registry

	router := interactions.NewRouter(registry, deps.Observer)
	b.session.AddHandler(router.Handle)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Discord session ready")
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("error registering commands: %w", err)
	}
	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	defs := b.registry.Definitions()
	created, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID,
		b.config.GuildID,
		defs,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("cannot overwrite %d commands: %w", len(defs), err)
	}

	scope := "global"
	if b.config.GuildID != "" {
		scope = "guild " + b.config.GuildID
	}
	log.WithFields(log.Fields{
		"count": len(created),
		"scope": scope,
	}).Info("Registered slash commands")
	return nil
}

// Close closes the gateway connection
func (b *Bot) Close() error {
	return b.session.Close()
}
