package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	applog "sheetshop/internal/log"
)

// RequireAdmin guards the admin routes with a bearer token checked
// against the configured bcrypt hash. With no hash configured the whole
// admin surface stays closed.
func RequireAdmin(keyHash string, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access disabled"})
		}
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if token == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(token)) != nil {
			lg := applog.WithRequest(log, c)
			lg.Warn().Msg("admin access denied")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return c.Next()
	}
}
