// Package migrate upgrades records persisted under older schema versions to
// the current one. It runs once at the load boundary (and on import) and is
// deliberately separate from steady-state store logic. Every pass is
// idempotent: already-current data comes back unchanged.
package migrate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/spec-kit/supportzen/internal/domain"
)

var ticketIDPattern = regexp.MustCompile(`^TKT-(\d+)$`)

// rawTicket tolerates every historical ticket shape: string or array
// categories, a pre-rename "response" field, and missing optional fields.
type rawTicket struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Category      json.RawMessage     `json:"category"`
	AgentResponse string              `json:"agentResponse"`
	Response      string              `json:"response"`
	Link          string              `json:"link"`
	AIToolsUsed   []domain.AITool     `json:"aiToolsUsed"`
	Status        domain.TicketStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     *time.Time          `json:"updatedAt"`
	ShiftID       string              `json:"shiftId"`
	IsArchived    *bool               `json:"isArchived"`
}

// Tickets decodes a persisted ticket collection of any schema version and
// upgrades it to current records in one deterministic pass.
func Tickets(payload []byte) ([]domain.Ticket, error) {
	var raw []rawTicket
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}

	highest := 0
	for _, t := range raw {
		if n, ok := ticketIDNumber(t.ID); ok && n > highest {
			highest = n
		}
	}

	next := highest + 1
	tickets := make([]domain.Ticket, 0, len(raw))
	for _, t := range raw {
		id := t.ID
		if _, ok := ticketIDNumber(id); !ok {
			id = fmt.Sprintf("TKT-%03d", next)
			next++
		}

		agentResponse := t.AgentResponse
		if agentResponse == "" {
			agentResponse = t.Response
		}

		status := t.Status
		if !domain.KnownStatus(status) {
			status = domain.TicketStatusOpen
		}

		updatedAt := t.CreatedAt
		if t.UpdatedAt != nil && t.UpdatedAt.After(t.CreatedAt) {
			updatedAt = *t.UpdatedAt
		}

		archived := t.IsArchived != nil && *t.IsArchived
		// archived implies a terminal status; anything else is corrupt data
		if archived && !domain.TerminalStatus(status) {
			archived = false
		}

		tickets = append(tickets, domain.Ticket{
			ID:            id,
			Title:         t.Title,
			Description:   t.Description,
			Category:      upgradeCategory(t.Category),
			AgentResponse: agentResponse,
			Link:          t.Link,
			AIToolsUsed:   filterTools(t.AIToolsUsed),
			Status:        status,
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     updatedAt,
			ShiftID:       t.ShiftID,
			IsArchived:    archived,
		})
	}
	return tickets, nil
}

// upgradeCategory maps any historical category representation to a non-empty
// set of current tags. "Support" was retired in favor of "General Query".
func upgradeCategory(raw json.RawMessage) []domain.TicketCategory {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "Support" {
			return []domain.TicketCategory{domain.CategoryGeneralQuery}
		}
		if domain.KnownCategory(domain.TicketCategory(single)) {
			return []domain.TicketCategory{domain.TicketCategory(single)}
		}
		return []domain.TicketCategory{domain.CategoryOthers}
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		kept := make([]domain.TicketCategory, 0, len(many))
		for _, c := range many {
			if domain.KnownCategory(domain.TicketCategory(c)) {
				kept = append(kept, domain.TicketCategory(c))
			}
		}
		if len(kept) == 0 {
			return []domain.TicketCategory{domain.CategoryOthers}
		}
		return kept
	}

	return []domain.TicketCategory{domain.CategoryOthers}
}

func filterTools(tools []domain.AITool) []domain.AITool {
	if len(tools) == 0 {
		return nil
	}
	kept := make([]domain.AITool, 0, len(tools))
	for _, t := range tools {
		if domain.KnownAITool(t) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func ticketIDNumber(id string) (int, bool) {
	m := ticketIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
