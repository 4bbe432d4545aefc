package middleware

import (
	"github.com/gofiber/fiber/v2"

	"rightsquest/backend/config"
	"rightsquest/backend/utils"
)

// AuthMiddleware rejects requests without a valid session token. The same
// response is returned whether the token is missing, expired or forged.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
