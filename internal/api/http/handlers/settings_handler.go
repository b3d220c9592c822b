package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/api/dto"
	"github.com/spec-kit/supportzen/internal/domain"
	"github.com/spec-kit/supportzen/internal/store"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// SettingsHandler manages the preference endpoints.
type SettingsHandler struct {
	settings *store.SettingsStore
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get GET /settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.settings.Get()})
}

// Update PUT /settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated := h.settings.Update(c.UserContext(), domain.Settings{
		AvatarURL:          req.AvatarURL,
		Theme:              req.Theme,
		TimeFormat:         domain.TimeFormat(req.TimeFormat),
		TicketDisplayLimit: req.TicketDisplayLimit,
		ExchangeRate:       req.ExchangeRate,
	})
	return c.JSON(fiber.Map{"data": updated})
}
