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

// ErrTicketNotFound is returned when updating a ticket that does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// ActiveShiftSource supplies the shift new and updated tickets bind to.
// ShiftStore implements it; tests substitute a stub.
type ActiveShiftSource interface {
	Active() (domain.Shift, bool)
}

// TicketInput describes ticket creation payload.
type TicketInput struct {
	Title         string
	Description   string
	Category      []domain.TicketCategory
	AgentResponse string
	Link          string
	AIToolsUsed   []domain.AITool
	Status        domain.TicketStatus
}

// TicketStore owns the ticket collection: sequential ID assignment, binding to
// the active shift, and the two automatic lifecycle rules. Auto-close runs at
// load time; auto-archive runs at load time and after every explicit update,
// never at shift end.
type TicketStore struct {
	mu         sync.Mutex
	slots      persistence.SlotStore
	logger     *zap.Logger
	dispatcher events.Dispatcher
	shifts     ActiveShiftSource
	now        func() time.Time
	staleness  time.Duration

	tickets []domain.Ticket
	lastID  int
}

// TicketStoreDeps bundles construction dependencies.
type TicketStoreDeps struct {
	Slots      persistence.SlotStore
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Shifts     ActiveShiftSource
	Now        func() time.Time
	Staleness  time.Duration
}

// NewTicketStore constructs the store. Call Load before first use.
func NewTicketStore(deps TicketStoreDeps) *TicketStore {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	staleness := deps.Staleness
	if staleness <= 0 {
		staleness = 72 * time.Hour
	}
	return &TicketStore{
		slots:      deps.Slots,
		logger:     deps.Logger,
		dispatcher: deps.Dispatcher,
		shifts:     deps.Shifts,
		now:        now,
		staleness:  staleness,
	}
}

// Load reads the persisted collection, applies the legacy migration pass and
// then the lifecycle rules. Missing or unparsable data falls back to the seed
// dataset; load never fails.
func (s *TicketStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.slots.Read(ctx, persistence.SlotTickets)
	switch {
	case errors.Is(err, persistence.ErrSlotEmpty):
		s.tickets = seedTickets(s.now())
	case err != nil:
		s.logger.Error("read tickets slot", zap.Error(err))
		s.tickets = seedTickets(s.now())
	default:
		tickets, merr := migrate.Tickets(payload)
		if merr != nil {
			s.logger.Warn("tickets slot unparsable, reseeding", zap.Error(merr))
			s.tickets = seedTickets(s.now())
		} else {
			s.tickets = tickets
		}
	}

	// the counter never goes below any suffix ever observed, so IDs are not
	// reused after the highest-numbered ticket is deleted or after a restart
	s.lastID = highestTicketID(s.tickets)
	if persisted := loadCounter(ctx, s.slots, persistence.SlotTicketCounter); persisted > s.lastID {
		s.lastID = persisted
	}
	persistCounter(ctx, s.slots, s.logger, persistence.SlotTicketCounter, s.lastID)

	s.autoCloseLocked(ctx)
	s.autoArchiveLocked(ctx)
	s.persist(ctx)
}

// List returns a snapshot of the collection, insertion order (newest first).
func (s *TicketStore) List() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Ticket(nil), s.tickets...)
}

// Get returns a ticket by id.
func (s *TicketStore) Get(id string) (domain.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

// Add creates a ticket with the next sequential ID, stamps both timestamps,
// and binds it to the active shift when one exists. New tickets are prepended.
func (s *TicketStore) Add(ctx context.Context, input TicketInput) domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	status := input.Status
	if !domain.KnownStatus(status) {
		status = domain.TicketStatusOpen
	}
	category := input.Category
	if len(category) == 0 {
		category = []domain.TicketCategory{domain.CategoryOthers}
	}

	s.lastID++
	persistCounter(ctx, s.slots, s.logger, persistence.SlotTicketCounter, s.lastID)
	ticket := domain.Ticket{
		ID:            fmt.Sprintf("TKT-%03d", s.lastID),
		Title:         input.Title,
		Description:   input.Description,
		Category:      category,
		AgentResponse: input.AgentResponse,
		Link:          input.Link,
		AIToolsUsed:   input.AIToolsUsed,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if active, ok := s.shifts.Active(); ok {
		ticket.ShiftID = active.ID
	}

	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	s.archiveTicketLocked(ctx, 0, now)
	ticket = s.tickets[0]
	s.persist(ctx)

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:   ticket.Title,
			Status:  ticket.Status,
			ShiftID: ticket.ShiftID,
		},
	}, now)
	return ticket
}

// Update replaces the stored record matching the incoming id. CreatedAt is
// immutable, UpdatedAt is forced to now, an unbound ticket binds to the active
// shift, and the auto-archive rule is re-applied.
func (s *TicketStore) Update(ctx context.Context, incoming domain.Ticket) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for i := range s.tickets {
		if s.tickets[i].ID != incoming.ID {
			continue
		}
		stored := s.tickets[i]
		oldStatus := stored.Status

		incoming.CreatedAt = stored.CreatedAt
		incoming.UpdatedAt = now
		if !domain.KnownStatus(incoming.Status) {
			incoming.Status = stored.Status
		}
		if len(incoming.Category) == 0 {
			incoming.Category = stored.Category
		}
		if incoming.ShiftID == "" {
			incoming.ShiftID = stored.ShiftID
		}
		if incoming.ShiftID == "" {
			if active, ok := s.shifts.Active(); ok {
				incoming.ShiftID = active.ID
			}
		}
		if incoming.IsArchived && !domain.TerminalStatus(incoming.Status) {
			incoming.IsArchived = false
		}

		s.tickets[i] = incoming
		s.archiveTicketLocked(ctx, i, now)
		updated := s.tickets[i]
		s.persist(ctx)

		if oldStatus != updated.Status {
			publish(ctx, s.dispatcher, s.logger, events.Event{
				Type:     events.EventTicketUpdated,
				EntityID: updated.ID,
				Payload: events.TicketStatusChangedPayload{
					OldStatus: oldStatus,
					NewStatus: updated.Status,
				},
			}, now)
		} else {
			publish(ctx, s.dispatcher, s.logger, events.Event{
				Type:     events.EventTicketUpdated,
				EntityID: updated.ID,
			}, now)
		}
		return updated, nil
	}
	return domain.Ticket{}, ErrTicketNotFound
}

// Delete removes a ticket by id. Deleting an unknown id is a no-op.
func (s *TicketStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tickets {
		if t.ID != id {
			continue
		}
		s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
		s.persist(ctx)
		publish(ctx, s.dispatcher, s.logger, events.Event{
			Type:     events.EventTicketDeleted,
			EntityID: id,
		}, s.now())
		return
	}
}

// Replace swaps the whole collection, used by import after migration. The
// lifecycle rules run on the imported data just as they do at load.
func (s *TicketStore) Replace(ctx context.Context, tickets []domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append([]domain.Ticket(nil), tickets...)
	if highest := highestTicketID(s.tickets); highest > s.lastID {
		s.lastID = highest
		persistCounter(ctx, s.slots, s.logger, persistence.SlotTicketCounter, s.lastID)
	}
	s.autoCloseLocked(ctx)
	s.autoArchiveLocked(ctx)
	s.persist(ctx)
}

// autoCloseLocked forces stale unresolved tickets to Closed. Open tickets age
// from creation, In Progress tickets from their last update.
func (s *TicketStore) autoCloseLocked(ctx context.Context) {
	now := s.now()
	for i := range s.tickets {
		t := &s.tickets[i]
		stale := (t.Status == domain.TicketStatusOpen && now.Sub(t.CreatedAt) >= s.staleness) ||
			(t.Status == domain.TicketStatusInProgress && now.Sub(t.UpdatedAt) >= s.staleness)
		if !stale {
			continue
		}
		oldStatus := t.Status
		t.Status = domain.TicketStatusClosed
		t.UpdatedAt = now
		publish(ctx, s.dispatcher, s.logger, events.Event{
			Type:     events.EventTicketAutoClosed,
			EntityID: t.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: domain.TicketStatusClosed,
			},
		}, now)
	}
}

// autoArchiveLocked moves every unarchived Resolved/Closed ticket to history.
func (s *TicketStore) autoArchiveLocked(ctx context.Context) {
	now := s.now()
	for i := range s.tickets {
		s.archiveTicketLocked(ctx, i, now)
	}
}

func (s *TicketStore) archiveTicketLocked(ctx context.Context, i int, now time.Time) {
	t := &s.tickets[i]
	if t.IsArchived || !domain.TerminalStatus(t.Status) {
		return
	}
	t.IsArchived = true
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketArchived,
		EntityID: t.ID,
	}, now)
}

// persist writes the full collection back to its slot. Write failures are
// logged and absorbed: in-memory state stays usable but is not durable.
func (s *TicketStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.tickets)
	if err != nil {
		s.logger.Error("marshal tickets", zap.Error(err))
		return
	}
	if err := s.slots.Write(ctx, persistence.SlotTickets, payload); err != nil {
		s.logger.Error("persist tickets slot", zap.Error(err))
	}
}
