package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/supportzen/pkg/util"
)

// Gate protects the API when a dashboard password is configured. Without one
// the gate is open: the expected mode for a local single-tenant install.
type Gate struct {
	tokens  *TokenManager
	enabled bool
}

// NewGate constructs the middleware.
func NewGate(tokens *TokenManager, enabled bool) *Gate {
	return &Gate{tokens: tokens, enabled: enabled}
}

// Enabled reports whether the gate requires authentication.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Handle enforces bearer-token authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	if !g.enabled {
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	if err := g.tokens.ValidateToken(parts[1]); err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	return c.Next()
}
