package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/config"
)

// Slot names one persisted key-value payload. Each slot holds the full JSON
// serialization of its collection and is rewritten in one piece per mutation.
type Slot string

const (
	SlotTickets  Slot = "tickets"
	SlotShifts   Slot = "shifts"
	SlotSettings Slot = "settings"

	// Counter slots back the monotonic ID sequences so identifiers survive
	// restarts and are never reused after deletions.
	SlotTicketCounter Slot = "ticket_counter"
	SlotShiftCounter  Slot = "shift_counter"
)

// ErrSlotEmpty signals that a slot has never been written.
var ErrSlotEmpty = errors.New("slot empty")

// SlotStore is the persistence boundary for the in-memory stores. Each store
// owns exactly one slot; no other component writes it.
type SlotStore interface {
	Read(ctx context.Context, slot Slot) ([]byte, error)
	Write(ctx context.Context, slot Slot, payload []byte) error
	Ping(ctx context.Context) error
	Close()
}

// Open constructs the slot store selected by configuration.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (SlotStore, error) {
	switch cfg.Driver {
	case "", "bunt":
		return NewBunt(cfg.Bunt, logger)
	case "redis":
		return NewRedis(cfg.Redis, logger), nil
	case "postgres":
		return NewPostgres(ctx, cfg.Postgres, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
