package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/supportzen/internal/config"
	"github.com/spec-kit/supportzen/internal/domain"
)

// SummaryFallback is returned whenever a ticket summary cannot be produced.
const SummaryFallback = "Could not generate summary."

// statusFallback is returned whenever a status suggestion cannot be produced.
const statusFallback = domain.TicketStatusInProgress

// SuggestionService is the boundary to the AI collaborator: a text classifier
// with a fixed output domain. Every failure mode (network, timeout, or an
// unrecognizable reply) collapses to a fixed default; callers never see an
// error.
type SuggestionService struct {
	client *resty.Client
	cfg    config.AIConfig
	logger *zap.Logger
}

// NewSuggestionService builds the service. An empty BaseURL disables outbound
// calls entirely; both operations then return their fallbacks immediately.
func NewSuggestionService(cfg config.AIConfig, logger *zap.Logger) *SuggestionService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &SuggestionService{client: client, cfg: cfg, logger: logger}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SuggestStatus asks the model for the next most likely ticket status. The
// reply is scanned for the first recognized status name; anything else yields
// the fixed default.
func (s *SuggestionService) SuggestStatus(ctx context.Context, summary string) domain.TicketStatus {
	prompt := fmt.Sprintf(
		`Based on the following ticket summary, suggest the next most likely status. `+
			`The possible statuses are: Open, In Progress, Resolved, Closed. `+
			`Return only the status name as a single string. Summary: %q`, summary)

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("status suggestion failed", zap.Error(err))
		return statusFallback
	}
	if status, ok := statusFromReply(reply); ok {
		return status
	}
	return statusFallback
}

// Summarize asks the model for a one-sentence resolution summary.
func (s *SuggestionService) Summarize(ctx context.Context, description, agentResponse string) string {
	if agentResponse == "" {
		agentResponse = "Not provided"
	}
	prompt := fmt.Sprintf(
		`Based on the following ticket description and agent response, generate a concise, `+
			`one-sentence summary of the resolution. If there is no agent response, summarize `+
			`the problem. Description: %q Agent Response: %q Return only the summary as a single string.`,
		description, agentResponse)

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("ticket summarization failed", zap.Error(err))
		return SummaryFallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return SummaryFallback
	}
	return reply
}

func (s *SuggestionService) complete(ctx context.Context, prompt string) (string, error) {
	if s.cfg.BaseURL == "" {
		return "", fmt.Errorf("ai collaborator not configured")
	}

	var parsed chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    s.cfg.Model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&parsed).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("ai collaborator returned %s", resp.Status())
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai collaborator returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// statusFromReply scans a model reply for the first recognized status name,
// checking statuses in workflow order.
func statusFromReply(reply string) (domain.TicketStatus, bool) {
	for _, status := range domain.TicketStatuses() {
		if strings.Contains(reply, string(status)) {
			return status, true
		}
	}
	return "", false
}
