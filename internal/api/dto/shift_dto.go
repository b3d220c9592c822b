package dto

// CreateShiftRequest adds a Pending shift to the roster.
type CreateShiftRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// StartShiftRequest starts a new shift immediately, completing any active one.
type StartShiftRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
}
