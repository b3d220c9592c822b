package domain

// ShiftStatus enumerates lifecycle states for shifts.
type ShiftStatus string

const (
	ShiftStatusPending   ShiftStatus = "Pending"
	ShiftStatusActive    ShiftStatus = "Active"
	ShiftStatusCompleted ShiftStatus = "Completed"
)

// KnownShiftStatus reports whether s is a valid shift status.
func KnownShiftStatus(s ShiftStatus) bool {
	switch s {
	case ShiftStatusPending, ShiftStatusActive, ShiftStatusCompleted:
		return true
	}
	return false
}

// Shift is a bounded work session. StartTime/EndTime are the scheduled
// wall-clock times (HH:MM, informational only); StartedAt/EndedAt record the
// actual transition instants. At most one shift in a collection is Active.
type Shift struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime,omitempty"`
	StartedAt Timestamp   `json:"startedAt"`
	EndedAt   Timestamp   `json:"endedAt"`
	Status    ShiftStatus `json:"status"`
}
