package store

import (
	"time"

	"github.com/spec-kit/supportzen/internal/domain"
)

// seedTickets is the fixed fallback dataset used on first run and whenever the
// persisted slot cannot be parsed. Timestamps are relative to now so freshly
// seeded tickets are not immediately auto-closed as stale.
func seedTickets(now time.Time) []domain.Ticket {
	mk := func(id, title, description string, category domain.TicketCategory, status domain.TicketStatus, age time.Duration) domain.Ticket {
		created := now.Add(-age)
		return domain.Ticket{
			ID:          id,
			Title:       title,
			Description: description,
			Category:    []domain.TicketCategory{category},
			Status:      status,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	return []domain.Ticket{
		mk("TKT-005", "Login server patch rollout",
			"The issue with the login server has been identified and a patch is being deployed.",
			domain.CategoryTechnicalIssue, domain.TicketStatusInProgress, 30*time.Minute),
		mk("TKT-004", "Password reset link not working",
			"Password reset link not working. User is locked out.",
			domain.CategoryAccountIssue, domain.TicketStatusOpen, time.Hour),
		mk("TKT-003", "Application crashes on startup",
			"Application crashes on startup. Log files attached.",
			domain.CategoryTechnicalIssue, domain.TicketStatusResolved, 20*time.Hour),
		mk("TKT-002", "Printer network error",
			"Cannot connect to the new office printer. Getting a network error.",
			domain.CategoryGeneralQuery, domain.TicketStatusOpen, 2*time.Hour),
		mk("TKT-001", "Screen flickering after update",
			"User's screen is flickering after the latest update. Seems to be a driver issue.",
			domain.CategoryTechnicalIssue, domain.TicketStatusInProgress, 3*time.Hour),
	}
}

// seedShifts is the fixed fallback shift roster. All shifts start Pending;
// nothing is active until the operator starts a shift.
func seedShifts() []domain.Shift {
	mk := func(id, name, start, end string) domain.Shift {
		return domain.Shift{
			ID:        id,
			Name:      name,
			StartTime: start,
			EndTime:   end,
			Status:    domain.ShiftStatusPending,
		}
	}

	return []domain.Shift{
		mk("SH-1", "Morning Shift", "08:00", "16:00"),
		mk("SH-2", "Evening Shift", "16:00", "00:00"),
		mk("SH-3", "Night Shift", "00:00", "08:00"),
		mk("SH-4", "Weekend On-Call", "10:00", "18:00"),
	}
}
