package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supportzen/internal/api/dto"
	"github.com/spec-kit/supportzen/internal/auth"
	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// SessionHandler issues operator session tokens when the dashboard password
// gate is enabled.
type SessionHandler struct {
	tokens       *auth.TokenManager
	passwordHash string
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(tokens *auth.TokenManager, passwordHash string) *SessionHandler {
	return &SessionHandler{tokens: tokens, passwordHash: passwordHash}
}

// Login POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	if h.passwordHash == "" {
		return c.JSON(fiber.Map{"data": fiber.Map{"gateEnabled": false}})
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := auth.ComparePassword(h.passwordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid password")
	}

	token, expiresAt, err := h.tokens.GenerateToken()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"token":     token,
		"expiresAt": expiresAt,
	}})
}
