package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketStatuses lists every valid status in workflow order.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
}

// KnownStatus reports whether s is one of the four ticket statuses.
func KnownStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TerminalStatus reports whether a ticket in status s is eligible for archival.
func TerminalStatus(s TicketStatus) bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketCategory enumerates classification tags.
type TicketCategory string

const (
	CategoryAccountIssue   TicketCategory = "Account Issue"
	CategoryBilling        TicketCategory = "Billing & Payments"
	CategoryTechnicalIssue TicketCategory = "Technical Issue"
	CategoryFeedback       TicketCategory = "Feedback"
	CategoryGeneralQuery   TicketCategory = "General Query"
	CategoryOthers         TicketCategory = "Others"
)

// TicketCategories lists every valid category tag.
func TicketCategories() []TicketCategory {
	return []TicketCategory{
		CategoryAccountIssue,
		CategoryBilling,
		CategoryTechnicalIssue,
		CategoryFeedback,
		CategoryGeneralQuery,
		CategoryOthers,
	}
}

// KnownCategory reports whether c is a current category tag.
func KnownCategory(c TicketCategory) bool {
	for _, candidate := range TicketCategories() {
		if candidate == c {
			return true
		}
	}
	return false
}

// AITool enumerates assistant tools an agent may have used on a ticket.
type AITool string

const (
	AIToolChatGPT    AITool = "ChatGPT"
	AIToolGemini     AITool = "Gemini"
	AIToolClaude     AITool = "Claude"
	AIToolCopilot    AITool = "Copilot"
	AIToolPerplexity AITool = "Perplexity"
)

// KnownAITool reports whether t is a recognized tool tag.
func KnownAITool(t AITool) bool {
	switch t {
	case AIToolChatGPT, AIToolGemini, AIToolClaude, AIToolCopilot, AIToolPerplexity:
		return true
	}
	return false
}

// Ticket is the unit of support work. Category and AIToolsUsed are unordered
// tag sets; deduplication is the editing surface's job, not the store's.
// ShiftID is a weak reference to the shift active when the ticket was last
// created or updated; empty means unbound.
type Ticket struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      []TicketCategory `json:"category"`
	AgentResponse string           `json:"agentResponse,omitempty"`
	Link          string           `json:"link,omitempty"`
	AIToolsUsed   []AITool         `json:"aiToolsUsed,omitempty"`
	Status        TicketStatus     `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	ShiftID       string           `json:"shiftId,omitempty"`
	IsArchived    bool             `json:"isArchived"`
}
