package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/api/http/handlers"
	"github.com/spec-kit/supportzen/internal/auth"
)

// RouteConfig bundles everything the router needs.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Session   *handlers.SessionHandler
	Tickets   *handlers.TicketsHandler
	Shifts    *handlers.ShiftsHandler
	Settings  *handlers.SettingsHandler
	Dashboard *handlers.DashboardHandler
	Transfer  *handlers.TransferHandler
	Gate      *auth.Gate
}

// RegisterRoutes wires all HTTP endpoints.
func RegisterRoutes(app *fiber.App, rc RouteConfig) {
	app.Get("/health/live", rc.Health.Live)
	app.Get("/health/ready", rc.Health.Ready)
	app.Get("/health/metrics", rc.Health.Metrics)

	app.Post("/auth/login", rc.Session.Login)

	api := app.Group("/api/v1", rc.Gate.Handle)

	tickets := api.Group("/tickets")
	tickets.Get("/", rc.Tickets.List)
	tickets.Post("/", rc.Tickets.Create)
	tickets.Post("/suggest-status", rc.Tickets.SuggestStatus)
	tickets.Post("/summarize", rc.Tickets.Summarize)
	tickets.Get("/:id", rc.Tickets.Get)
	tickets.Put("/:id", rc.Tickets.Update)
	tickets.Delete("/:id", rc.Tickets.Delete)

	shifts := api.Group("/shifts")
	shifts.Get("/", rc.Shifts.List)
	shifts.Post("/", rc.Shifts.Create)
	shifts.Post("/start", rc.Shifts.Start)
	shifts.Post("/end", rc.Shifts.End)
	shifts.Delete("/:id", rc.Shifts.Delete)

	api.Get("/settings", rc.Settings.Get)
	api.Put("/settings", rc.Settings.Update)

	api.Get("/dashboard/stats", rc.Dashboard.Stats)
	api.Get("/analytics", rc.Dashboard.Analytics)
	api.Get("/earnings", rc.Dashboard.Earnings)
	api.Get("/history", rc.Dashboard.History)

	api.Get("/export", rc.Transfer.Export)
	api.Post("/import", rc.Transfer.Import)
}
