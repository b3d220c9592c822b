package migrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supportzen/internal/domain"
)

func TestShiftsRenumbersInvalidIDs(t *testing.T) {
	payload := []byte(`[
		{"id":"SH-3","name":"Morning","status":"Pending"},
		{"id":"old-uuid","name":"Evening","status":"Pending"},
		{"id":"SH-1","name":"Night","status":"Pending"}
	]`)

	shifts, err := Shifts(payload)
	require.NoError(t, err)

	assert.Equal(t, "SH-3", shifts[0].ID)
	assert.Equal(t, "SH-4", shifts[1].ID)
	assert.Equal(t, "SH-1", shifts[2].ID)
}

func TestShiftsDefaultsUnknownStatus(t *testing.T) {
	payload := []byte(`[{"id":"SH-1","name":"Morning","status":"Paused"}]`)

	shifts, err := Shifts(payload)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusPending, shifts[0].Status)
}

func TestShiftsRestoresSingleActiveInvariant(t *testing.T) {
	payload := []byte(`[
		{"id":"SH-1","name":"First","status":"Active","startedAt":"2025-05-01T08:00:00Z"},
		{"id":"SH-2","name":"Second","status":"Active","startedAt":"2025-05-01T16:00:00Z"},
		{"id":"SH-3","name":"Third","status":"Completed"}
	]`)

	shifts, err := Shifts(payload)
	require.NoError(t, err)

	assert.Equal(t, domain.ShiftStatusActive, shifts[0].Status)
	assert.Equal(t, domain.ShiftStatusCompleted, shifts[1].Status)
	// the demoted shift gets an end marker derived from its start
	assert.True(t, shifts[1].EndedAt.IsSet())
	assert.True(t, shifts[1].EndedAt.Equal(shifts[1].StartedAt))
	assert.Equal(t, domain.ShiftStatusCompleted, shifts[2].Status)
}

func TestShiftsIdempotent(t *testing.T) {
	payload := []byte(`[
		{"id":"weird","name":"A","status":"Active","startedAt":"2025-05-01T08:00:00Z"},
		{"id":"SH-2","name":"B","status":"Active","startedAt":"2025-05-01T16:00:00Z"}
	]`)

	once, err := Shifts(payload)
	require.NoError(t, err)

	again, err := json.Marshal(once)
	require.NoError(t, err)
	twice, err := Shifts(again)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestShiftsRejectsMalformedPayload(t *testing.T) {
	_, err := Shifts([]byte(`"nope"`))
	assert.Error(t, err)
}
