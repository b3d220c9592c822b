package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/persistence"
)

func TestSettingsStoreDefaultsOnEmptySlot(t *testing.T) {
	slots := newMemSlots()
	s := NewSettingsStore(slots, zap.NewNop())
	s.Load(context.Background())

	got := s.Get()
	assert.Equal(t, domain.DefaultSettings(), got)

	// defaults were written back so the next load is a plain read
	_, err := slots.Read(context.Background(), persistence.SlotSettings)
	assert.NoError(t, err)
}

func TestSettingsStoreDefaultsOnCorruptSlot(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotSettings, `][`)
	s := NewSettingsStore(slots, zap.NewNop())
	s.Load(context.Background())

	assert.Equal(t, domain.DefaultSettings(), s.Get())
}

func TestSettingsStoreNormalizesOnLoad(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotSettings, `{"timeFormat":"13h","ticketDisplayLimit":0,"exchangeRate":-1}`)
	s := NewSettingsStore(slots, zap.NewNop())
	s.Load(context.Background())

	got := s.Get()
	assert.Equal(t, domain.TimeFormat12h, got.TimeFormat)
	assert.Equal(t, 10, got.TicketDisplayLimit)
	assert.Equal(t, 58.75, got.ExchangeRate)
}

func TestSettingsStoreUpdate(t *testing.T) {
	slots := newMemSlots()
	s := NewSettingsStore(slots, zap.NewNop())
	s.Load(context.Background())

	updated := s.Update(context.Background(), domain.Settings{
		Theme:              "dark",
		TimeFormat:         domain.TimeFormat24h,
		TicketDisplayLimit: -1, // show all
		ExchangeRate:       60,
	})
	assert.Equal(t, "dark", updated.Theme)
	assert.Equal(t, domain.TimeFormat24h, updated.TimeFormat)
	assert.Equal(t, -1, updated.TicketDisplayLimit)
	assert.Equal(t, float64(60), updated.ExchangeRate)

	// persisted: a fresh store sees the update
	s2 := NewSettingsStore(slots, zap.NewNop())
	s2.Load(context.Background())
	assert.Equal(t, updated, s2.Get())
}
