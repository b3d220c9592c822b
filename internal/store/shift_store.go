package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/events"
	"github.com/spec-kit/supportzen/internal/migrate"
	"github.com/spec-kit/supportzen/internal/persistence"
)

// ErrShiftActive is returned when deleting the currently active shift.
var ErrShiftActive = errors.New("active shift cannot be deleted")

// ShiftStore owns the shift collection and enforces the single-active-shift
// invariant. Every mutation is an atomic read-modify-persist of the whole
// collection; the mutex only serializes concurrent HTTP handlers, the domain
// itself has no finer-grained interleavings.
type ShiftStore struct {
	mu         sync.Mutex
	slots      persistence.SlotStore
	logger     *zap.Logger
	dispatcher events.Dispatcher
	now        func() time.Time

	shifts []domain.Shift
	lastID int
}

// ShiftStoreDeps bundles construction dependencies.
type ShiftStoreDeps struct {
	Slots      persistence.SlotStore
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewShiftStore constructs the store. Call Load before first use.
func NewShiftStore(deps ShiftStoreDeps) *ShiftStore {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ShiftStore{
		slots:      deps.Slots,
		logger:     deps.Logger,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// Load reads the persisted collection, applying the legacy migration pass.
// Missing or unparsable data falls back to the seed roster; load never fails.
func (s *ShiftStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.slots.Read(ctx, persistence.SlotShifts)
	switch {
	case errors.Is(err, persistence.ErrSlotEmpty):
		s.shifts = seedShifts()
	case err != nil:
		s.logger.Error("read shifts slot", zap.Error(err))
		s.shifts = seedShifts()
	default:
		shifts, merr := migrate.Shifts(payload)
		if merr != nil {
			s.logger.Warn("shifts slot unparsable, reseeding", zap.Error(merr))
			s.shifts = seedShifts()
		} else {
			s.shifts = shifts
		}
	}

	// same reuse guard as tickets: the counter only ever goes up
	s.lastID = highestShiftID(s.shifts)
	if persisted := loadCounter(ctx, s.slots, persistence.SlotShiftCounter); persisted > s.lastID {
		s.lastID = persisted
	}
	persistCounter(ctx, s.slots, s.logger, persistence.SlotShiftCounter, s.lastID)

	s.persist(ctx)
}

// List returns a snapshot of the collection.
func (s *ShiftStore) List() []domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Shift(nil), s.shifts...)
}

// Active returns the currently active shift, if any.
func (s *ShiftStore) Active() (domain.Shift, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *ShiftStore) activeLocked() (domain.Shift, bool) {
	for _, shift := range s.shifts {
		if shift.Status == domain.ShiftStatusActive {
			return shift, true
		}
	}
	return domain.Shift{}, false
}

// Add appends a new Pending shift to the roster.
func (s *ShiftStore) Add(ctx context.Context, name, startTime, endTime string) domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	persistCounter(ctx, s.slots, s.logger, persistence.SlotShiftCounter, s.lastID)
	shift := domain.Shift{
		ID:        fmt.Sprintf("SH-%d", s.lastID),
		Name:      name,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    domain.ShiftStatusPending,
	}
	s.shifts = append(s.shifts, shift)
	s.persist(ctx)
	return shift
}

// StartNew completes any currently active shift and creates a new one directly
// in Active state.
func (s *ShiftStore) StartNew(ctx context.Context, name, startTime string) domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for i := range s.shifts {
		if s.shifts[i].Status == domain.ShiftStatusActive {
			s.shifts[i].Status = domain.ShiftStatusCompleted
			s.shifts[i].EndedAt = domain.At(now)
			publish(ctx, s.dispatcher, s.logger, events.Event{
				Type:     events.EventShiftEnded,
				EntityID: s.shifts[i].ID,
				Payload:  events.ShiftEndedPayload{Name: s.shifts[i].Name, EndedAt: now},
			}, now)
		}
	}

	s.lastID++
	persistCounter(ctx, s.slots, s.logger, persistence.SlotShiftCounter, s.lastID)
	shift := domain.Shift{
		ID:        fmt.Sprintf("SH-%d", s.lastID),
		Name:      name,
		StartTime: startTime,
		StartedAt: domain.At(now),
		Status:    domain.ShiftStatusActive,
	}
	s.shifts = append([]domain.Shift{shift}, s.shifts...)
	s.persist(ctx)

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventShiftStarted,
		EntityID: shift.ID,
		Payload:  events.ShiftStartedPayload{Name: shift.Name, StartedAt: now},
	}, now)
	return shift
}

// EndActive completes the active shift. A missing active shift is a no-op,
// not an error.
func (s *ShiftStore) EndActive(ctx context.Context) (domain.Shift, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for i := range s.shifts {
		if s.shifts[i].Status != domain.ShiftStatusActive {
			continue
		}
		s.shifts[i].Status = domain.ShiftStatusCompleted
		s.shifts[i].EndedAt = domain.At(now)
		ended := s.shifts[i]
		s.persist(ctx)
		publish(ctx, s.dispatcher, s.logger, events.Event{
			Type:     events.EventShiftEnded,
			EntityID: ended.ID,
			Payload:  events.ShiftEndedPayload{Name: ended.Name, EndedAt: now},
		}, now)
		return ended, true
	}
	return domain.Shift{}, false
}

// Delete removes a shift by id. Active shifts refuse deletion; an unknown id
// is a no-op.
func (s *ShiftStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, shift := range s.shifts {
		if shift.ID != id {
			continue
		}
		if shift.Status == domain.ShiftStatusActive {
			return ErrShiftActive
		}
		s.shifts = append(s.shifts[:i], s.shifts[i+1:]...)
		s.persist(ctx)
		return nil
	}
	return nil
}

// Replace swaps the whole collection, used by import after migration.
func (s *ShiftStore) Replace(ctx context.Context, shifts []domain.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts = append([]domain.Shift(nil), shifts...)
	if highest := highestShiftID(s.shifts); highest > s.lastID {
		s.lastID = highest
		persistCounter(ctx, s.slots, s.logger, persistence.SlotShiftCounter, s.lastID)
	}
	s.persist(ctx)
}

// persist writes the full collection back to its slot. Write failures are
// logged and absorbed: in-memory state stays usable but is not durable.
func (s *ShiftStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.shifts)
	if err != nil {
		s.logger.Error("marshal shifts", zap.Error(err))
		return
	}
	if err := s.slots.Write(ctx, persistence.SlotShifts, payload); err != nil {
		s.logger.Error("persist shifts slot", zap.Error(err))
	}
}
