package query

import (
	"time"

	"github.com/spec-kit/supportzen/internal/domain"
)

// StatusCount is one slice of the status breakdown chart.
type StatusCount struct {
	Status domain.TicketStatus `json:"status"`
	Count  int                 `json:"count"`
}

// StatusBreakdown counts tickets per status, in workflow order.
func StatusBreakdown(tickets []domain.Ticket) []StatusCount {
	counts := make(map[domain.TicketStatus]int, 4)
	for _, t := range tickets {
		counts[t.Status]++
	}
	breakdown := make([]StatusCount, 0, 4)
	for _, status := range domain.TicketStatuses() {
		breakdown = append(breakdown, StatusCount{Status: status, Count: counts[status]})
	}
	return breakdown
}

// DailyCount is one point of the created-vs-resolved trend line.
type DailyCount struct {
	Date     string `json:"date"`
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}

// TicketsOverTime buckets ticket creation by day over the trailing window,
// counting a resolved/closed ticket toward its creation day. Days with no
// activity appear with zero counts so the trend line has a fixed x-axis.
func TicketsOverTime(tickets []domain.Ticket, now time.Time, days int) []DailyCount {
	if days <= 0 {
		days = 7
	}

	const layout = "2006-01-02"
	index := make(map[string]int, days)
	trend := make([]DailyCount, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i-days+1)
		key := day.Format(layout)
		index[key] = i
		trend[i] = DailyCount{Date: key}
	}

	for _, t := range tickets {
		i, ok := index[t.CreatedAt.Format(layout)]
		if !ok {
			continue
		}
		trend[i].Created++
		if domain.TerminalStatus(t.Status) {
			trend[i].Resolved++
		}
	}
	return trend
}

// ToolCount is one slice of the AI tool usage chart.
type ToolCount struct {
	Tool  domain.AITool `json:"tool"`
	Count int           `json:"count"`
}

// AIToolUsage counts how often each assistant tool appears across tickets.
// Tools never used are omitted.
func AIToolUsage(tickets []domain.Ticket) []ToolCount {
	counts := make(map[domain.AITool]int)
	for _, t := range tickets {
		for _, tool := range t.AIToolsUsed {
			counts[tool]++
		}
	}

	ordered := []domain.AITool{
		domain.AIToolChatGPT,
		domain.AIToolGemini,
		domain.AIToolClaude,
		domain.AIToolCopilot,
		domain.AIToolPerplexity,
	}
	usage := make([]ToolCount, 0, len(counts))
	for _, tool := range ordered {
		if counts[tool] > 0 {
			usage = append(usage, ToolCount{Tool: tool, Count: counts[tool]})
		}
	}
	return usage
}
