package middleware

import (
	"errors"
	"strings"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireDatabase returns 503 on store-backed routes when the startup
// connection failed; the rest of the app keeps serving.
func RequireDatabase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if database.DB == nil {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.DATABASE_UNAVAILABLE, errors.New("no database connection"))
		}
		return c.Next()
	}
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminOnly assumes Protected already ran.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, user, ok := helper.GetInfoUserFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, errors.New("account missing or blocked"))
		}
		if !helper.IsAdmin(user) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}
		c.Locals("actingUser", user)
		return c.Next()
	}
}
