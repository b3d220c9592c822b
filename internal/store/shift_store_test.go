package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/events"
	"github.com/spec-kit/supportzen/internal/persistence"
)

func newShiftStore(t *testing.T, slots persistence.SlotStore, dispatcher events.Dispatcher, now func() time.Time) *ShiftStore {
	t.Helper()
	return NewShiftStore(ShiftStoreDeps{
		Slots:      slots,
		Logger:     zap.NewNop(),
		Dispatcher: dispatcher,
		Now:        now,
	})
}

func TestShiftStoreSeedsEmptySlot(t *testing.T) {
	slots := newMemSlots()
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())

	shifts := s.List()
	require.Len(t, shifts, 4)
	assert.Equal(t, "SH-1", shifts[0].ID)
	for _, shift := range shifts {
		assert.Equal(t, domain.ShiftStatusPending, shift.Status)
	}
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestShiftStoreSeedsOnCorruptSlot(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `not json at all`)
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())
	assert.Len(t, s.List(), 4)
}

func TestShiftStoreAddAppendsPending(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[]`)
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())

	shift := s.Add(context.Background(), "Split Shift", "12:00", "20:00")
	assert.Equal(t, "SH-1", shift.ID)
	assert.Equal(t, domain.ShiftStatusPending, shift.Status)
	assert.False(t, shift.StartedAt.IsSet())
}

func TestShiftStoreStartNewCompletesCurrentActive(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[]`)
	dispatcher := &recordingDispatcher{}
	s := newShiftStore(t, slots, dispatcher, func() time.Time { return now })
	s.Load(context.Background())

	first := s.StartNew(context.Background(), "Morning", "08:00")
	assert.Equal(t, domain.ShiftStatusActive, first.Status)
	assert.True(t, first.StartedAt.Equal(domain.At(now)))

	now = now.Add(8 * time.Hour)
	second := s.StartNew(context.Background(), "Evening", "16:00")

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)

	var completed domain.Shift
	for _, shift := range s.List() {
		if shift.ID == first.ID {
			completed = shift
		}
	}
	assert.Equal(t, domain.ShiftStatusCompleted, completed.Status)
	assert.True(t, completed.EndedAt.Equal(domain.At(now)))

	types := dispatcher.types()
	assert.Contains(t, types, events.EventShiftStarted)
	assert.Contains(t, types, events.EventShiftEnded)
}

func TestShiftStoreEndActive(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[]`)
	s := newShiftStore(t, slots, nil, func() time.Time { return now })
	s.Load(context.Background())

	// ending with nothing active is a no-op
	_, ok := s.EndActive(context.Background())
	assert.False(t, ok)

	s.StartNew(context.Background(), "Morning", "08:00")
	now = now.Add(4 * time.Hour)
	ended, ok := s.EndActive(context.Background())
	require.True(t, ok)
	assert.Equal(t, domain.ShiftStatusCompleted, ended.Status)
	assert.True(t, ended.EndedAt.Equal(domain.At(now)))

	_, ok = s.Active()
	assert.False(t, ok)
}

func TestShiftStoreDeleteRefusesActive(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[]`)
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())

	active := s.StartNew(context.Background(), "Morning", "08:00")
	assert.ErrorIs(t, s.Delete(context.Background(), active.ID), ErrShiftActive)

	pending := s.Add(context.Background(), "Evening", "16:00", "00:00")
	assert.NoError(t, s.Delete(context.Background(), pending.ID))
	assert.NoError(t, s.Delete(context.Background(), "SH-999"))
	assert.Len(t, s.List(), 1)
}

func TestShiftStoreLoadRestoresSingleActive(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[
		{"id":"SH-1","name":"A","status":"Active","startedAt":"2025-05-01T08:00:00Z"},
		{"id":"SH-2","name":"B","status":"Active","startedAt":"2025-05-01T16:00:00Z"}
	]`)
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())

	actives := 0
	for _, shift := range s.List() {
		if shift.Status == domain.ShiftStatusActive {
			actives++
		}
	}
	assert.Equal(t, 1, actives)
}

func TestShiftStoreIDsContinueAfterHighest(t *testing.T) {
	slots := newMemSlots()
	slots.seed(persistence.SlotShifts, `[{"id":"SH-9","name":"A","status":"Pending"}]`)
	s := newShiftStore(t, slots, nil, nil)
	s.Load(context.Background())

	shift := s.Add(context.Background(), "B", "08:00", "16:00")
	assert.Equal(t, "SH-10", shift.ID)

	// deleting the highest-numbered shift does not cause ID reuse
	require.NoError(t, s.Delete(context.Background(), shift.ID))
	next := s.Add(context.Background(), "C", "16:00", "00:00")
	assert.Equal(t, "SH-11", next.ID)

	// and the sequence survives a restart over the same storage
	s2 := newShiftStore(t, slots, nil, nil)
	s2.Load(context.Background())
	require.NoError(t, s2.Delete(context.Background(), next.ID))
	after := s2.Add(context.Background(), "D", "00:00", "08:00")
	assert.Equal(t, "SH-12", after.ID)
}
