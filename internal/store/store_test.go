package store

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/events"
	"github.com/spec-kit/supportzen/internal/persistence"
)

// memSlots is an in-memory SlotStore for tests.
type memSlots struct {
	mu       sync.Mutex
	data     map[persistence.Slot][]byte
	failRead bool
}

func newMemSlots() *memSlots {
	return &memSlots{data: make(map[persistence.Slot][]byte)}
}

func (m *memSlots) Read(_ context.Context, slot persistence.Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRead {
		return nil, errors.New("backend down")
	}
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

func (m *memSlots) seed(slot persistence.Slot, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[slot] = []byte(payload)
}

// recordingDispatcher captures published events in order.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, len(d.events))
	for i, e := range d.events {
		types[i] = e.Type
	}
	return types
}

// failingDispatcher rejects every publish.
type failingDispatcher struct{}

func (failingDispatcher) Publish(context.Context, events.Event) error {
	return errors.New("handler blew up")
}

func (failingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

// stubShifts is a fixed ActiveShiftSource.
type stubShifts struct {
	shift domain.Shift
	ok    bool
}

func (s stubShifts) Active() (domain.Shift, bool) { return s.shift, s.ok }
