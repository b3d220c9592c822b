package store

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/persistence"
)

// highestTicketID returns the largest numeric suffix present in the
// collection. The stores keep a separate monotonic counter on top of this so
// identifiers are never reused, even after the highest-numbered record is
// deleted.
func highestTicketID(tickets []domain.Ticket) int {
	highest := 0
	for _, t := range tickets {
		var n int
		if _, err := fmt.Sscanf(t.ID, "TKT-%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// highestShiftID returns the largest numeric suffix present in the roster.
func highestShiftID(shifts []domain.Shift) int {
	highest := 0
	for _, s := range shifts {
		var n int
		if _, err := fmt.Sscanf(s.ID, "SH-%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// loadCounter reads a persisted ID counter. Missing or unparsable data yields
// zero; the caller reconciles against the collection's highest suffix.
func loadCounter(ctx context.Context, slots persistence.SlotStore, slot persistence.Slot) int {
	payload, err := slots.Read(ctx, slot)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(payload))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// persistCounter writes an ID counter back to its slot. Failures are logged
// and absorbed like any other persist.
func persistCounter(ctx context.Context, slots persistence.SlotStore, logger *zap.Logger, slot persistence.Slot, n int) {
	if err := slots.Write(ctx, slot, []byte(strconv.Itoa(n))); err != nil {
		logger.Error("persist id counter", zap.String("slot", string(slot)), zap.Error(err))
	}
}
