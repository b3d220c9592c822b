package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/supportzen/internal/query"
	"github.com/spec-kit/supportzen/internal/store"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// DashboardHandler serves the read-only projections: stats, analytics charts,
// earnings and history. Everything is recomputed from store snapshots on each
// request; nothing is cached.
type DashboardHandler struct {
	tickets  *store.TicketStore
	shifts   *store.ShiftStore
	settings *store.SettingsStore
	price    decimal.Decimal
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(tickets *store.TicketStore, shifts *store.ShiftStore, settings *store.SettingsStore, price decimal.Decimal) *DashboardHandler {
	return &DashboardHandler{tickets: tickets, shifts: shifts, settings: settings, price: price}
}

// Stats GET /dashboard/stats returns the headline numbers plus the
// recent-ticket page.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	tickets := h.tickets.List()
	limit := h.settings.Get().TicketDisplayLimit
	page := c.QueryInt("page", 1)
	if page < 1 {
		return apperrors.NewValidationError("page must be positive", nil)
	}

	recent, totalPages := query.RecentTickets(tickets, limit, page)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"stats":         query.DashboardStats(tickets, h.price, time.Now()),
		"recentTickets": recent,
		"totalPages":    totalPages,
	}})
}

// Analytics GET /analytics returns the three chart datasets.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	tickets := h.tickets.List()
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		return apperrors.NewValidationError("days must be between 1 and 90", nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"byStatus":    query.StatusBreakdown(tickets),
		"overTime":    query.TicketsOverTime(tickets, time.Now(), days),
		"aiToolUsage": query.AIToolUsage(tickets),
	}})
}

// Earnings GET /earnings.
func (h *DashboardHandler) Earnings(c *fiber.Ctx) error {
	earnings := query.ComputeEarnings(h.tickets.List(), h.price, h.settings.Get().ExchangeRate)
	return c.JSON(fiber.Map{"data": earnings})
}

// History GET /history returns archived tickets, optionally grouped by shift.
func (h *DashboardHandler) History(c *fiber.Ctx) error {
	archived := query.ArchivedTickets(h.tickets.List())
	if c.QueryBool("groupByShift", false) {
		return c.JSON(fiber.Map{"data": query.GroupByShift(archived)})
	}
	return c.JSON(fiber.Map{"data": archived})
}
