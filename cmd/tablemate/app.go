package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tablemate/internal/adapters/discord"
	"tablemate/internal/adapters/logging"
	"tablemate/internal/application"
	"tablemate/internal/config"
	"tablemate/internal/infrastructure/clock"
	"tablemate/internal/infrastructure/database"
	"tablemate/internal/infrastructure/database/sqlc_generated"
	"tablemate/internal/infrastructure/i18n"
	"tablemate/internal/infrastructure/memory"
	"tablemate/internal/ports/input"
	"tablemate/internal/ports/output"
	"tablemate/pkg/tz"
)

// app wires ports: output adapters -> application services.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	loc        *time.Location
	translator output.T

	runner         *application.Runner
	lifecycle      input.LifecycleUseCase
	events         input.EventUseCase
	participations input.ParticipationUseCase

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{
		cfg:        cfg,
		log:        log,
		loc:        tz.Load(cfg.Timezone),
		translator: i18n.NewTranslator(cfg.Locale, log),
	}

	eventRepo, participationRepo, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	notifier, err := a.openNotifier()
	if err != nil {
		a.Close()
		return nil, err
	}

	clk := clock.System{}
	gate := application.NewGate(eventRepo, clk, notifier, cfg.PersistenceTimeout, log)
	a.runner = application.NewRunner(eventRepo, gate, clk, application.RunnerConfig{
		ResyncSchedule:  cfg.ResyncCron,
		RetryMaxElapsed: cfg.RetryMaxElapsed,
		RetryMaxTries:   cfg.RetryMaxTries,
	}, log)
	scheduler := application.NewScheduler(gate, eventRepo, clk, cfg.RecalcInterval, log)
	a.closers = append(a.closers, scheduler.Close)

	a.lifecycle = scheduler
	a.events = application.NewEventService(eventRepo, participationRepo, clk, a.runner)
	a.participations = application.NewParticipationService(participationRepo, eventRepo, clk)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) (output.EventRepository, output.ParticipationRepository, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.log.Warn("⚠️ in-memory storage: nothing survives a restart")
		store := memory.NewStore()
		return store, store.Participations(), nil
	}

	if err := database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath, a.log); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	pool, err := database.NewPool(ctx, a.cfg.DatabaseURL, database.PoolOptions{
		MaxConns:       a.cfg.DatabaseMaxConns,
		ConnectTimeout: a.cfg.PersistenceTimeout,
	}, a.log)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	q := sqlc_generated.New(pool)
	return database.NewEventRepository(q), database.NewParticipationRepository(q), nil
}

func (a *app) openNotifier() (output.Notifier, error) {
	if a.cfg.DiscordToken == "" {
		return logging.NewNotifier(a.log), nil
	}
	bot, err := discord.NewBot(a.cfg.DiscordToken, a.log)
	if err != nil {
		return nil, err
	}
	if err := bot.Start(); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := bot.Close(); err != nil {
			a.log.Warn("close discord session", "error", err)
		}
	})
	return discord.NewNotifier(bot.Session(), a.translator, a.cfg.Locale, a.loc, a.log), nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
