package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/supportzen/internal/domain"
)

var price = decimal.RequireFromString("1.33")

func ticket(id string, status domain.TicketStatus, created time.Time, opts ...func(*domain.Ticket)) domain.Ticket {
	t := domain.Ticket{
		ID:        id,
		Title:     id,
		Category:  []domain.TicketCategory{domain.CategoryOthers},
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func archived(t *domain.Ticket) { t.IsArchived = true }

func updatedAt(u time.Time) func(*domain.Ticket) {
	return func(t *domain.Ticket) { t.UpdatedAt = u }
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tickets := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusOpen, now.Add(-2*time.Hour)),
		ticket("TKT-002", domain.TicketStatusInProgress, now.Add(-3*time.Hour)),
		ticket("TKT-003", domain.TicketStatusResolved, now.Add(-4*time.Hour), updatedAt(now.Add(-time.Hour))),
		ticket("TKT-004", domain.TicketStatusResolved, yesterday),
		ticket("TKT-005", domain.TicketStatusClosed, yesterday, archived),
	}

	stats := DashboardStats(tickets, price, now)

	assert.Equal(t, 2, stats.OpenTickets)
	assert.Equal(t, 1, stats.ResolvedToday) // TKT-003 only; TKT-004 was created yesterday
	assert.Equal(t, 4, stats.TotalTickets)  // archived TKT-005 excluded
	// earnings count every terminal ticket, archived included: 3 x 1.33
	assert.Equal(t, "3.99", stats.TotalEarnings)
}

func TestAverageResponseTimeFormatting(t *testing.T) {
	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

	minutes := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusResolved, base, updatedAt(base.Add(30*time.Minute))),
	}
	assert.Equal(t, "30m", DashboardStats(minutes, price, base).AvgResponseTime)

	hours := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusClosed, base, updatedAt(base.Add(90*time.Minute))),
	}
	assert.Equal(t, "1.5h", DashboardStats(hours, price, base).AvgResponseTime)

	none := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusOpen, base),
	}
	assert.Equal(t, "0m", DashboardStats(none, price, base).AvgResponseTime)
}

func TestRecentTicketsPagination(t *testing.T) {
	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		ticket("TKT-005", domain.TicketStatusOpen, base),
		ticket("TKT-004", domain.TicketStatusOpen, base),
		ticket("TKT-003", domain.TicketStatusOpen, base, archivedClosed),
		ticket("TKT-002", domain.TicketStatusOpen, base),
		ticket("TKT-001", domain.TicketStatusOpen, base),
	}

	page1, totalPages := RecentTickets(tickets, 2, 1)
	assert.Equal(t, 2, totalPages)
	assert.Equal(t, []string{"TKT-005", "TKT-004"}, ids(page1))

	page2, _ := RecentTickets(tickets, 2, 2)
	assert.Equal(t, []string{"TKT-002", "TKT-001"}, ids(page2))

	// out-of-range page clamps to the last one
	clamped, _ := RecentTickets(tickets, 2, 99)
	assert.Equal(t, []string{"TKT-002", "TKT-001"}, ids(clamped))

	// -1 means show all
	all, totalPages := RecentTickets(tickets, -1, 1)
	assert.Equal(t, 1, totalPages)
	assert.Len(t, all, 4)
}

func archivedClosed(t *domain.Ticket) {
	t.Status = domain.TicketStatusClosed
	t.IsArchived = true
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}
