package query

import (
	"sort"

	"github.com/spec-kit/supportzen/internal/domain"
)

// ArchivedTickets returns the history view: archived tickets, most recently
// updated first.
func ArchivedTickets(tickets []domain.Ticket) []domain.Ticket {
	archived := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.IsArchived {
			archived = append(archived, t)
		}
	}
	sort.SliceStable(archived, func(i, j int) bool {
		return archived[i].UpdatedAt.After(archived[j].UpdatedAt)
	})
	return archived
}

// ShiftGroup pairs a shift id with the tickets worked under it. An empty
// ShiftID groups tickets never bound to any shift.
type ShiftGroup struct {
	ShiftID string          `json:"shiftId"`
	Tickets []domain.Ticket `json:"tickets"`
}

// GroupByShift partitions tickets by their shift binding, preserving the
// collection's newest-first order inside each group. Groups appear in order
// of first appearance.
func GroupByShift(tickets []domain.Ticket) []ShiftGroup {
	index := make(map[string]int)
	groups := make([]ShiftGroup, 0)
	for _, t := range tickets {
		i, ok := index[t.ShiftID]
		if !ok {
			i = len(groups)
			index[t.ShiftID] = i
			groups = append(groups, ShiftGroup{ShiftID: t.ShiftID})
		}
		groups[i].Tickets = append(groups[i].Tickets, t)
	}
	return groups
}
