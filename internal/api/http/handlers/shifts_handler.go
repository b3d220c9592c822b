package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/api/dto"
	"github.com/spec-kit/supportzen/internal/store"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// ShiftsHandler manages the shift endpoints.
type ShiftsHandler struct {
	shifts *store.ShiftStore
}

// NewShiftsHandler constructs the handler.
func NewShiftsHandler(shifts *store.ShiftStore) *ShiftsHandler {
	return &ShiftsHandler{shifts: shifts}
}

// List GET /shifts.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	shifts := h.shifts.List()
	response := fiber.Map{"data": shifts}
	if active, ok := h.shifts.Active(); ok {
		response["activeShiftId"] = active.ID
	}
	return c.JSON(response)
}

// Create POST /shifts adds a Pending shift to the roster.
func (h *ShiftsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.StartTime) == "" {
		return apperrors.NewValidationError("name and startTime required", nil)
	}
	shift := h.shifts.Add(c.UserContext(), strings.TrimSpace(req.Name), req.StartTime, req.EndTime)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shift})
}

// Start POST /shifts/start completes any active shift and starts a new one.
func (h *ShiftsHandler) Start(c *fiber.Ctx) error {
	var req dto.StartShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	shift := h.shifts.StartNew(c.UserContext(), strings.TrimSpace(req.Name), req.StartTime)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shift})
}

// End POST /shifts/end completes the active shift. Ending with no active
// shift is a no-op, not an error.
func (h *ShiftsHandler) End(c *fiber.Ctx) error {
	ended, ok := h.shifts.EndActive(c.UserContext())
	if !ok {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": ended})
}

// Delete DELETE /shifts/:id. Active shifts refuse deletion.
func (h *ShiftsHandler) Delete(c *fiber.Ctx) error {
	err := h.shifts.Delete(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrShiftActive) {
		return apperrors.NewConflict("active shift cannot be deleted", fiber.Map{"id": c.Params("id")})
	}
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
