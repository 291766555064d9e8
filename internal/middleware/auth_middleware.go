package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/celebra-app/celebra-backend/internal/models"
	jwtPkg "github.com/celebra-app/celebra-backend/pkg/jwt"
)

const principalKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Email  string
	Admin  bool
}

// Policy is decided once at startup. Bypass short-circuits authentication
// for QA setups; it is injected here rather than read from the environment
// per request.
type Policy struct {
	Bypass bool
}

// GetPrincipal returns the principal attached by Authenticate.
func GetPrincipal(c *fiber.Ctx) Principal {
	if p, ok := c.Locals(principalKey).(Principal); ok {
		return p
	}
	return Principal{}
}

// Authenticate verifies the bearer token and attaches a Principal to the
// request context, rejecting with 401 before the handler runs.
func Authenticate(tokens *jwtPkg.Manager, policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if policy.Bypass {
			c.Locals(principalKey, Principal{UserID: "qa-user", Email: "qa@celebra.app", Admin: true})
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("authorization header is required"))
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("invalid authorization header format"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("invalid token"))
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("invalid user id in token"))
		}
		email, _ := claims["email"].(string)
		admin, _ := claims["admin"].(bool)

		c.Locals(principalKey, Principal{UserID: userID, Email: email, Admin: admin})
		return c.Next()
	}
}

// RequireAdmin gates a route on the admin claim. It assumes Authenticate
// already ran on the group.
func RequireAdmin(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if policy.Bypass {
			return c.Next()
		}
		if !GetPrincipal(c).Admin {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("admin privileges required"))
		}
		return c.Next()
	}
}
