// Package query holds read-only projections over store snapshots. Nothing in
// here mutates or caches state; every function recomputes from the collections
// it is handed.
package query

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/supportzen/internal/domain"
)

// Stats is the dashboard headline block.
type Stats struct {
	OpenTickets     int    `json:"openTickets"`
	ResolvedToday   int    `json:"resolvedToday"`
	TotalTickets    int    `json:"totalTickets"`
	AvgResponseTime string `json:"avgResponseTime"`
	TotalEarnings   string `json:"totalEarningsUsd"`
}

// DashboardStats computes the headline numbers. Open/resolved/total counts
// consider only the active (non-archived) worklist; earnings and response
// time consider every resolved or closed ticket ever recorded.
func DashboardStats(tickets []domain.Ticket, price decimal.Decimal, now time.Time) Stats {
	var open, resolvedToday, total int
	for _, t := range tickets {
		if t.IsArchived {
			continue
		}
		total++
		if t.Status == domain.TicketStatusOpen || t.Status == domain.TicketStatusInProgress {
			open++
		}
		if t.Status == domain.TicketStatusResolved && sameDay(t.CreatedAt, now) {
			resolvedToday++
		}
	}

	return Stats{
		OpenTickets:     open,
		ResolvedToday:   resolvedToday,
		TotalTickets:    total,
		AvgResponseTime: averageResponseTime(tickets),
		TotalEarnings:   earningsUSD(tickets, price).StringFixed(2),
	}
}

// RecentTickets pages through the active worklist. A limit of -1 returns
// everything on a single page.
func RecentTickets(tickets []domain.Ticket, limit, page int) ([]domain.Ticket, int) {
	active := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if !t.IsArchived {
			active = append(active, t)
		}
	}

	if limit == -1 || len(active) == 0 {
		return active, 1
	}
	if limit <= 0 {
		limit = 10
	}
	totalPages := (len(active) + limit - 1) / limit
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], totalPages
}

// averageResponseTime averages created-to-last-update across resolved and
// closed tickets, formatted as hours past the one hour mark, minutes below.
func averageResponseTime(tickets []domain.Ticket) string {
	var total time.Duration
	var count int
	for _, t := range tickets {
		if !domain.TerminalStatus(t.Status) {
			continue
		}
		if t.UpdatedAt.After(t.CreatedAt) {
			total += t.UpdatedAt.Sub(t.CreatedAt)
		}
		count++
	}
	if count == 0 {
		return "0m"
	}

	avg := total / time.Duration(count)
	if avg >= time.Hour {
		return fmt.Sprintf("%.1fh", avg.Hours())
	}
	return fmt.Sprintf("%dm", int(avg.Round(time.Minute)/time.Minute))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
