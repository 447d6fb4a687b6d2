package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the Authorization header to a user and stores it in
// the request context. "Token <key>" is the canonical scheme; "Bearer" is
// accepted as an alias.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	key, ok := bearerTokenKey(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.ResolveToken(key)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func bearerTokenKey(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "token") && !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	key := strings.TrimSpace(parts[1])
	return key, key != ""
}
