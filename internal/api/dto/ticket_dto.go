package dto

// TicketRequest is the create/update payload. On update the id comes from the
// URL, not the body. Category and aiToolsUsed arrive as raw strings and are
// validated and deduplicated by the handler; the editing surface, not the
// store, prevents duplicate tags.
type TicketRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      []string `json:"category"`
	AgentResponse string   `json:"agentResponse"`
	Link          string   `json:"link"`
	AIToolsUsed   []string `json:"aiToolsUsed"`
	Status        string   `json:"status"`
	ShiftID       string   `json:"shiftId"`
	IsArchived    bool     `json:"isArchived"`
}

// SuggestStatusRequest asks the AI collaborator for the next likely status.
type SuggestStatusRequest struct {
	Summary string `json:"summary"`
}

// SummarizeRequest asks the AI collaborator for a resolution summary.
type SummarizeRequest struct {
	Description   string `json:"description"`
	AgentResponse string `json:"agentResponse"`
}
