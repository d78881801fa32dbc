package cmd

import (
	"context"
	"fmt"
	"time"

	"sblbot/application"
	"sblbot/bot"
	"sblbot/bot/features/settings"
	"sblbot/config"
	"sblbot/database"
	"sblbot/domain/services"
	"sblbot/events"
	"sblbot/infrastructure"
	"sblbot/infrastructure/observability"
	"sblbot/repository"
	"sblbot/sblapi"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies LOG_LEVEL and picks the formatter for the environment
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.Info("Starting SBL bot...")

	// Metrics first so every component can report
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName), cfg.DatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	settingsService := services.NewGuildSettingsService(repository.NewGuildSettingsRepository(db))

	log.Info("Initializing event bus...")
	eventBus := events.NewBus()
	natsClient, err := connectEventForwarding(ctx, cfg, eventBus, metrics)
	if err != nil {
		db.Close()
		return err
	}

	api := sblapi.NewClient(sblapi.ClientConfig{
		BaseURL:       cfg.SBLAPIURL,
		Token:         cfg.SBLAPIToken,
		Timeout:       cfg.SBLAPITimeout,
		HealthTimeout: cfg.SBLAPIHealthTimeout,
		Observer:      metrics,
	})
	log.WithField("url", api.BaseURL()).Info("SBL API client initialized")

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	})
	if err != nil {
		closeEventForwarding(natsClient)
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	loc := cfg.Location()
	deps := bot.Deps{
		API:       api,
		Settings:  settingsService,
		Publisher: eventBus,
		Observer:  metrics,
	}

	var stops []func()
	var weekly settings.WeeklyRunner
	if cfg.WeeklyAnnouncementEnabled {
		worker := application.NewWeeklyAnnouncementWorker(api, settingsService, discordBot.Poster(), eventBus, metrics, loc)
		weekly = worker
		stops = append(stops, worker.Start(ctx))
	} else {
		log.Info("Weekly announcement disabled")
	}

	var deadline settings.DeadlineRunner
	if cfg.DeadlineCheckEnabled {
		worker := application.NewDeadlineCheckWorker(api, settingsService, discordBot.Poster(), eventBus, metrics, loc)
		deadline = worker
		stops = append(stops, worker.Start(ctx))
	} else {
		log.Info("Deadline check disabled")
	}
	deps.Weekly = weekly
	deps.Deadline = deadline

	if err := discordBot.Start(ctx, deps); err != nil {
		for _, stop := range stops {
			stop()
		}
		closeEventForwarding(natsClient)
		db.Close()
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, stop := range stops {
		stop()
	}

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	closeEventForwarding(natsClient)

	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error flushing metrics")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// connectEventForwarding forwards bus events to NATS when servers are configured.
// It returns a nil client when forwarding is disabled.
func connectEventForwarding(ctx context.Context, cfg *config.Config, bus *events.Bus, metrics *observability.MetricsProvider) (*infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, events stay in process")
		return nil, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers, cfg.OTelServiceName)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	publisher := infrastructure.NewNATSEventPublisher(client, infrastructure.NewEventSubjectMapper(cfg.NATSSubjectPrefix), metrics)
	if err := publisher.EnsureEventStream(client); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}
	publisher.Attach(bus)

	log.Info("Event bus forwarding to NATS")
	return client, nil
}

func closeEventForwarding(client *infrastructure.NATSClient) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.WithError(err).Error("Error closing NATS connection")
	}
}
