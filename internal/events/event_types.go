package events

import (
	"time"

	"github.com/spec-kit/supportzen/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketUpdated    EventType = "ticket_updated"
	EventTicketDeleted    EventType = "ticket_deleted"
	EventTicketAutoClosed EventType = "ticket_auto_closed"
	EventTicketArchived   EventType = "ticket_archived"
	EventShiftStarted     EventType = "shift_started"
	EventShiftEnded       EventType = "shift_ended"
)

// Event represents a domain event emitted by the stores. EntityID carries the
// ticket or shift identifier the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title   string              `json:"title"`
	Status  domain.TicketStatus `json:"status"`
	ShiftID string              `json:"shift_id,omitempty"`
}

// TicketStatusChangedPayload payload, used for updates and auto-closes.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// ShiftStartedPayload payload.
type ShiftStartedPayload struct {
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// ShiftEndedPayload payload.
type ShiftEndedPayload struct {
	Name    string    `json:"name"`
	EndedAt time.Time `json:"ended_at"`
}
