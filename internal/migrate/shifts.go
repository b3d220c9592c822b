package migrate

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/spec-kit/supportzen/internal/domain"
)

var shiftIDPattern = regexp.MustCompile(`^SH-(\d+)$`)

type rawShift struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	StartTime string             `json:"startTime"`
	EndTime   string             `json:"endTime"`
	StartedAt domain.Timestamp   `json:"startedAt"`
	EndedAt   domain.Timestamp   `json:"endedAt"`
	Status    domain.ShiftStatus `json:"status"`
}

// Shifts decodes a persisted shift collection and upgrades it: IDs outside the
// SH-<n> format are renumbered after the highest valid one, missing statuses
// default to Pending, and the single-active invariant is restored (only the
// first Active shift survives; later ones complete).
func Shifts(payload []byte) ([]domain.Shift, error) {
	var raw []rawShift
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode shifts: %w", err)
	}

	highest := 0
	for _, s := range raw {
		if n, ok := shiftIDNumber(s.ID); ok && n > highest {
			highest = n
		}
	}

	next := highest + 1
	seenActive := false
	shifts := make([]domain.Shift, 0, len(raw))
	for _, s := range raw {
		id := s.ID
		if _, ok := shiftIDNumber(id); !ok {
			id = fmt.Sprintf("SH-%d", next)
			next++
		}

		status := s.Status
		if !domain.KnownShiftStatus(status) {
			status = domain.ShiftStatusPending
		}
		endedAt := s.EndedAt
		if status == domain.ShiftStatusActive {
			if seenActive {
				status = domain.ShiftStatusCompleted
				if !endedAt.IsSet() && s.StartedAt.IsSet() {
					endedAt = s.StartedAt
				}
			}
			seenActive = true
		}

		shifts = append(shifts, domain.Shift{
			ID:        id,
			Name:      s.Name,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			StartedAt: s.StartedAt,
			EndedAt:   endedAt,
			Status:    status,
		})
	}
	return shifts, nil
}

func shiftIDNumber(id string) (int, bool) {
	m := shiftIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
