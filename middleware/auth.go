package middleware

import (
	"flight-booking/types"
	"flight-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth validates the bearer token (or access cookie) and attaches the
// claims to the request context. The guest sentinel never holds a token, so
// everything behind this middleware is implicitly non-guest.
func RequireAuth() fiber.Handler {
	return RequireRoles()
}

// RequireRoles validates the token and additionally requires one of the given
// roles. With no roles listed, any authenticated account passes.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := utils.BearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if len(roles) > 0 && !hasRole(claims, roles) {
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

func hasRole(claims jwt.MapClaims, roles []string) bool {
	role, ok := claims["role"].(string)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
