package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/persistence"
	"github.com/spec-kit/supportzen/internal/store"
)

type memSlots struct {
	mu   sync.Mutex
	data map[persistence.Slot][]byte
}

func newMemSlots() *memSlots {
	return &memSlots{data: make(map[persistence.Slot][]byte)}
}

func (m *memSlots) Read(_ context.Context, slot persistence.Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.data[slot]
	if !ok {
		return nil, persistence.ErrSlotEmpty
	}
	return payload, nil
}

func (m *memSlots) Write(_ context.Context, slot persistence.Slot, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[slot] = append([]byte(nil), payload...)
	return nil
}

func (m *memSlots) Ping(context.Context) error { return nil }
func (m *memSlots) Close()                     {}

func newTransferFixture(t *testing.T) (*TransferService, *store.TicketStore, *store.ShiftStore, *store.SettingsStore) {
	t.Helper()
	ctx := context.Background()
	slots := newMemSlots()
	logger := zap.NewNop()

	shifts := store.NewShiftStore(store.ShiftStoreDeps{Slots: slots, Logger: logger})
	tickets := store.NewTicketStore(store.TicketStoreDeps{Slots: slots, Logger: logger, Shifts: shifts})
	settings := store.NewSettingsStore(slots, logger)
	shifts.Load(ctx)
	tickets.Load(ctx)
	settings.Load(ctx)

	return NewTransferService(tickets, shifts, settings, logger), tickets, shifts, settings
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	transfer, tickets, shifts, settings := newTransferFixture(t)

	bundle := transfer.Export(ctx)
	require.NotNil(t, bundle.Settings)
	payload, err := json.Marshal(bundle)
	require.NoError(t, err)

	// import into a fresh system
	transfer2, tickets2, shifts2, settings2 := newTransferFixture(t)
	result, err := transfer2.Import(ctx, payload)
	require.NoError(t, err)

	assert.True(t, result.SettingsApplied)
	assert.Equal(t, len(tickets.List()), result.TicketCount)
	assert.Equal(t, len(shifts.List()), result.ShiftCount)
	assert.Equal(t, settings.Get(), settings2.Get())
	assert.Equal(t, len(tickets.List()), len(tickets2.List()))
	assert.Equal(t, shifts.List(), shifts2.List())
}

func TestImportPartialBundle(t *testing.T) {
	ctx := context.Background()
	transfer, tickets, shifts, settings := newTransferFixture(t)
	before := settings.Get()
	shiftCount := len(shifts.List())

	result, err := transfer.Import(ctx, []byte(`{"tickets":[
		{"id":"TKT-001","title":"only one","category":"Support","status":"Open","createdAt":"2099-01-01T00:00:00Z"}
	]}`))
	require.NoError(t, err)

	assert.False(t, result.SettingsApplied)
	assert.Equal(t, 1, result.TicketCount)
	assert.Equal(t, 0, result.ShiftCount)

	// other stores untouched
	assert.Equal(t, before, settings.Get())
	assert.Len(t, shifts.List(), shiftCount)

	// the legacy category came through the migration pipeline
	got := tickets.List()
	require.Len(t, got, 1)
	assert.Equal(t, []domain.TicketCategory{domain.CategoryGeneralQuery}, got[0].Category)
}

func TestImportMalformedBundleLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	transfer, tickets, shifts, settings := newTransferFixture(t)
	ticketsBefore := tickets.List()
	shiftsBefore := shifts.List()
	settingsBefore := settings.Get()

	cases := map[string]string{
		"not json":     `{{{`,
		"no sections":  `{"unrelated":true}`,
		"bad tickets":  `{"tickets":"nope"}`,
		"bad shifts":   `{"settings":{"theme":"dark"},"shifts":42}`,
		"bad settings": `{"settings":[1,2,3]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := transfer.Import(ctx, []byte(payload))
			assert.ErrorIs(t, err, ErrInvalidBundle)
			assert.Equal(t, ticketsBefore, tickets.List())
			assert.Equal(t, shiftsBefore, shifts.List())
			assert.Equal(t, settingsBefore, settings.Get())
		})
	}
}
