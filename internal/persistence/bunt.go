package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/tidwall/buntdb"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/config"
)

// Bunt persists slots in buntdb files, one file per slot. This is the default
// driver for local single-tenant use.
type Bunt struct {
	dbs map[Slot]*buntdb.DB
}

// NewBunt opens (or creates) the slot databases under cfg.Dir.
func NewBunt(cfg config.BuntConfig, logger *zap.Logger) (*Bunt, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	b := &Bunt{dbs: make(map[Slot]*buntdb.DB)}
	for _, slot := range []Slot{SlotTickets, SlotShifts, SlotSettings, SlotTicketCounter, SlotShiftCounter} {
		db, err := buntdb.Open(filepath.Join(dir, string(slot)+".db"))
		if err != nil {
			b.Close()
			return nil, err
		}
		b.dbs[slot] = db
	}

	logger.Info("opened bunt storage", zap.String("dir", dir))
	return b, nil
}

// Read returns the slot payload, or ErrSlotEmpty when never written.
func (b *Bunt) Read(_ context.Context, slot Slot) ([]byte, error) {
	db, ok := b.dbs[slot]
	if !ok {
		return nil, ErrSlotEmpty
	}
	var payload []byte
	err := db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(string(slot))
		if err != nil {
			return err
		}
		payload = []byte(val)
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Write replaces the slot payload in a single transaction.
func (b *Bunt) Write(_ context.Context, slot Slot, payload []byte) error {
	db, ok := b.dbs[slot]
	if !ok {
		return errors.New("unknown slot")
	}
	return db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(string(slot), string(payload), nil)
		return err
	})
}

// Ping reports storage health; bunt files are always reachable once open.
func (b *Bunt) Ping(context.Context) error {
	if len(b.dbs) == 0 {
		return errors.New("bunt storage not open")
	}
	return nil
}

// Close shuts all slot databases.
func (b *Bunt) Close() {
	for _, db := range b.dbs {
		_ = db.Close()
	}
}
