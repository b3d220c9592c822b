package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supportzen/internal/domain"
)

func TestStatusBreakdownCoversAllStatuses(t *testing.T) {
	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusOpen, base),
		ticket("TKT-002", domain.TicketStatusOpen, base),
		ticket("TKT-003", domain.TicketStatusResolved, base),
	}

	breakdown := StatusBreakdown(tickets)
	require.Len(t, breakdown, 4)

	assert.Equal(t, StatusCount{Status: domain.TicketStatusOpen, Count: 2}, breakdown[0])
	assert.Equal(t, StatusCount{Status: domain.TicketStatusInProgress, Count: 0}, breakdown[1])
	assert.Equal(t, StatusCount{Status: domain.TicketStatusResolved, Count: 1}, breakdown[2])
	assert.Equal(t, StatusCount{Status: domain.TicketStatusClosed, Count: 0}, breakdown[3])
}

func TestTicketsOverTimeFixedWindow(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusOpen, now),
		ticket("TKT-002", domain.TicketStatusResolved, now.AddDate(0, 0, -2)),
		ticket("TKT-003", domain.TicketStatusOpen, now.AddDate(0, 0, -30)), // outside window
	}

	trend := TicketsOverTime(tickets, now, 7)
	require.Len(t, trend, 7)

	// fixed x-axis: oldest day first, every day present
	assert.Equal(t, "2025-07-04", trend[0].Date)
	assert.Equal(t, "2025-07-10", trend[6].Date)

	assert.Equal(t, DailyCount{Date: "2025-07-08", Created: 1, Resolved: 1}, trend[4])
	assert.Equal(t, DailyCount{Date: "2025-07-10", Created: 1, Resolved: 0}, trend[6])
	assert.Equal(t, DailyCount{Date: "2025-07-05"}, trend[1])
}

func TestAIToolUsageOmitsUnused(t *testing.T) {
	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	withTools := func(tools ...domain.AITool) func(*domain.Ticket) {
		return func(t *domain.Ticket) { t.AIToolsUsed = tools }
	}
	tickets := []domain.Ticket{
		ticket("TKT-001", domain.TicketStatusOpen, base, withTools(domain.AIToolClaude, domain.AIToolChatGPT)),
		ticket("TKT-002", domain.TicketStatusOpen, base, withTools(domain.AIToolClaude)),
		ticket("TKT-003", domain.TicketStatusOpen, base),
	}

	usage := AIToolUsage(tickets)
	assert.Equal(t, []ToolCount{
		{Tool: domain.AIToolChatGPT, Count: 1},
		{Tool: domain.AIToolClaude, Count: 2},
	}, usage)
}
