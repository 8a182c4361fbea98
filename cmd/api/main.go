package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesops_backend/internal/audit"
	"salesops_backend/internal/auth"
	"salesops_backend/internal/clients"
	"salesops_backend/internal/email"
	"salesops_backend/internal/events"
	"salesops_backend/internal/goals"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/http/router"
	"salesops_backend/internal/notification"
	"salesops_backend/internal/payments"
	"salesops_backend/internal/pipeline"
	"salesops_backend/internal/saleshistory"
	"salesops_backend/internal/scheduler"
	"salesops_backend/internal/vendors"
	"salesops_backend/platform/config"
	"salesops_backend/platform/db"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, log)
	vendorsModule := vendors.NewModule(pool, eventBus, val, log)
	clientsModule := clients.NewModule(pool, eventBus, val, log)
	pipelineModule := pipeline.NewModule(pool, eventBus, val, log)
	goalsModule := goals.NewModule(pool, vendorsModule.Service(), eventBus, val, log)
	salesModule := saleshistory.NewModule(pool, goalsModule.Service(), eventBus, log)
	paymentsModule := payments.NewModule(pool, eventBus, val, log)
	notificationModule := notification.NewModule(pool, eventBus, log)
	auditModule := audit.NewModule(pool, eventBus, log)

	// Reminder scheduling and email delivery are optional: without Redis the
	// pipeline still works, next-call reminders just never fire.
	if closeScheduler := initReminderScheduler(ctx, cfg, eventBus, log); closeScheduler != nil {
		defer closeScheduler()
	}
	emailNotifier := email.NewNotifier(
		email.NewSMTPSender(cfg),
		vendorsModule.Service(),
		pipelineModule.Service(),
		log,
		cfg.GetEmailEnabled(),
	)
	emailNotifier.Subscribe(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			vendorsModule,
			clientsModule,
			pipelineModule,
			goalsModule,
			salesModule,
			paymentsModule,
			notificationModule,
			auditModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(ctx context.Context, cfg *config.Config, bus events.Bus, log *logger.Logger) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; call reminders disabled")
		return nil
	}

	sched, err := scheduler.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize reminder scheduler", "error", err)
		return nil
	}
	sched.Subscribe(bus)

	return func() {
		_ = sched.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
