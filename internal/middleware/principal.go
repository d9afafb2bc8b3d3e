package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edupoint-labs/exam-portal-api/internal/auth"
	"github.com/edupoint-labs/exam-portal-api/internal/utils"
)

const principalLocal = "principal"

// TokenResolver turns a raw bearer token into a principal.
type TokenResolver interface {
	Resolve(token string) (auth.Principal, error)
}

// OptionalAuth resolves a bearer token into a principal when one is present.
// Requests without a token, or with a token that fails verification, continue
// as anonymous; endpoints that require identity enforce it themselves.
func OptionalAuth(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if principal, err := resolver.Resolve(token); err == nil {
				c.Locals(principalLocal, principal)
			}
		}
		return c.Next()
	}
}

// RequireAuth rejects requests whose bearer token is missing or invalid.
func RequireAuth(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		principal, err := resolver.Resolve(token)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalLocal, principal)
		return c.Next()
	}
}

// RequireRole ensures the resolved principal holds one of the allowed roles.
func RequireRole(roles ...auth.Role) fiber.Handler {
	allowed := make(map[auth.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if !principal.IsAuthenticated() {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[principal.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// GetPrincipal returns the principal bound to the request, or the anonymous
// principal when no token was resolved.
func GetPrincipal(c *fiber.Ctx) auth.Principal {
	if value := c.Locals(principalLocal); value != nil {
		if principal, ok := value.(auth.Principal); ok {
			return principal
		}
	}
	return auth.Principal{}
}

func bearerToken(c *fiber.Ctx) string {
	authorization := c.Get("Authorization")
	if authorization == "" {
		return ""
	}

	const bearer = "Bearer "
	if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
		return ""
	}

	return strings.TrimSpace(authorization[len(bearer):])
}
