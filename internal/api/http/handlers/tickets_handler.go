package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/api/dto"
	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/service"
	"github.com/spec-kit/supportzen/internal/store"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// TicketsHandler manages the ticket endpoints.
type TicketsHandler struct {
	tickets     *store.TicketStore
	suggestions *service.SuggestionService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *store.TicketStore, suggestions *service.SuggestionService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, suggestions: suggestions}
}

// List GET /tickets. Optional ?archived=true narrows to history,
// ?archived=false to the active worklist.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets := h.tickets.List()
	if archived := c.Query("archived"); archived != "" {
		want, err := strconv.ParseBool(archived)
		if err != nil {
			return apperrors.NewValidationError("invalid archived filter", nil)
		}
		filtered := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.IsArchived == want {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, ok := h.tickets.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("ticket", fiber.Map{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	category, err := parseCategories(req.Category)
	if err != nil {
		return err
	}
	tools, err := parseTools(req.AIToolsUsed)
	if err != nil {
		return err
	}
	if req.Status != "" && !domain.KnownStatus(domain.TicketStatus(req.Status)) {
		return apperrors.NewValidationError("unknown status", fiber.Map{"status": req.Status})
	}

	ticket := h.tickets.Add(c.UserContext(), store.TicketInput{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      category,
		AgentResponse: req.AgentResponse,
		Link:          req.Link,
		AIToolsUsed:   tools,
		Status:        domain.TicketStatus(req.Status),
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	category, err := parseCategories(req.Category)
	if err != nil {
		return err
	}
	tools, err := parseTools(req.AIToolsUsed)
	if err != nil {
		return err
	}
	if req.Status != "" && !domain.KnownStatus(domain.TicketStatus(req.Status)) {
		return apperrors.NewValidationError("unknown status", fiber.Map{"status": req.Status})
	}

	ticket, err := h.tickets.Update(c.UserContext(), domain.Ticket{
		ID:            c.Params("id"),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      category,
		AgentResponse: req.AgentResponse,
		Link:          req.Link,
		AIToolsUsed:   tools,
		Status:        domain.TicketStatus(req.Status),
		ShiftID:       req.ShiftID,
		IsArchived:    req.IsArchived,
	})
	if errors.Is(err, store.ErrTicketNotFound) {
		return apperrors.NewNotFound("ticket", fiber.Map{"id": c.Params("id")})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Delete DELETE /tickets/:id. Deleting an unknown id succeeds; removal is
// idempotent.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	h.tickets.Delete(c.UserContext(), c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// SuggestStatus POST /tickets/suggest-status. Never fails: the AI boundary
// absorbs every error into the fallback status.
func (h *TicketsHandler) SuggestStatus(c *fiber.Ctx) error {
	var req dto.SuggestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Summary) == "" {
		return apperrors.NewValidationError("summary required", nil)
	}
	status := h.suggestions.SuggestStatus(c.UserContext(), req.Summary)
	return c.JSON(fiber.Map{"data": fiber.Map{"status": status}})
}

// Summarize POST /tickets/summarize.
func (h *TicketsHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description required", nil)
	}
	summary := h.suggestions.Summarize(c.UserContext(), req.Description, req.AgentResponse)
	return c.JSON(fiber.Map{"data": fiber.Map{"summary": summary}})
}

// parseCategories validates and deduplicates category tags. The handler is
// the editing surface, so duplicate prevention happens here, not in the store.
func parseCategories(raw []string) ([]domain.TicketCategory, error) {
	seen := make(map[domain.TicketCategory]bool, len(raw))
	categories := make([]domain.TicketCategory, 0, len(raw))
	for _, c := range raw {
		tag := domain.TicketCategory(c)
		if !domain.KnownCategory(tag) {
			return nil, apperrors.NewValidationError("unknown category", fiber.Map{"category": c})
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		categories = append(categories, tag)
	}
	return categories, nil
}

func parseTools(raw []string) ([]domain.AITool, error) {
	seen := make(map[domain.AITool]bool, len(raw))
	tools := make([]domain.AITool, 0, len(raw))
	for _, t := range raw {
		tool := domain.AITool(t)
		if !domain.KnownAITool(tool) {
			return nil, apperrors.NewValidationError("unknown ai tool", fiber.Map{"tool": t})
		}
		if seen[tool] {
			continue
		}
		seen[tool] = true
		tools = append(tools, tool)
	}
	if len(tools) == 0 {
		return nil, nil
	}
	return tools, nil
}
