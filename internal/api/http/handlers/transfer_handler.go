package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/service"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// TransferHandler serves the bulk export/import boundary.
type TransferHandler struct {
	transfer *service.TransferService
}

// NewTransferHandler constructs the handler.
func NewTransferHandler(transfer *service.TransferService) *TransferHandler {
	return &TransferHandler{transfer: transfer}
}

// Export GET /export returns the full state bundle as a downloadable document.
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	filename := fmt.Sprintf("supportzen-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(h.transfer.Export(c.UserContext()))
}

// Import POST /import. A malformed bundle is a visible failure and leaves
// store state unchanged.
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	result, err := h.transfer.Import(c.UserContext(), c.Body())
	if errors.Is(err, service.ErrInvalidBundle) {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}
