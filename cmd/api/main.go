package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/supportzen/internal/api/http"
	"github.com/spec-kit/supportzen/internal/api/http/handlers"
	"github.com/spec-kit/supportzen/internal/auth"
	"github.com/spec-kit/supportzen/internal/config"
	"github.com/spec-kit/supportzen/internal/events"
	"github.com/spec-kit/supportzen/internal/observability"
	"github.com/spec-kit/supportzen/internal/persistence"
	"github.com/spec-kit/supportzen/internal/service"
	"github.com/spec-kit/supportzen/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	slots, err := persistence.Open(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer slots.Close()

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	shiftStore := store.NewShiftStore(store.ShiftStoreDeps{
		Slots:      slots,
		Logger:     logger,
		Dispatcher: dispatcher,
	})
	ticketStore := store.NewTicketStore(store.TicketStoreDeps{
		Slots:      slots,
		Logger:     logger,
		Dispatcher: dispatcher,
		Shifts:     shiftStore,
		Staleness:  cfg.Lifecycle.Staleness(),
	})
	settingsStore := store.NewSettingsStore(slots, logger)

	// Shifts load first so ticket shift bindings resolve against the roster.
	shiftStore.Load(ctx)
	ticketStore.Load(ctx)
	settingsStore.Load(ctx)

	suggestions := service.NewSuggestionService(cfg.AI, logger)
	transfer := service.NewTransferService(ticketStore, shiftStore, settingsStore, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	gate := auth.NewGate(tokens, cfg.Auth.PasswordHash != "")

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httpapi.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, slots, metrics),
		Session:   handlers.NewSessionHandler(tokens, cfg.Auth.PasswordHash),
		Tickets:   handlers.NewTicketsHandler(ticketStore, suggestions),
		Shifts:    handlers.NewShiftsHandler(shiftStore),
		Settings:  handlers.NewSettingsHandler(settingsStore),
		Dashboard: handlers.NewDashboardHandler(ticketStore, shiftStore, settingsStore, cfg.Lifecycle.TicketPrice()),
		Transfer:  handlers.NewTransferHandler(transfer),
		Gate:      gate,
	})

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.App.Addr()),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("authGate", gate.Enabled()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
