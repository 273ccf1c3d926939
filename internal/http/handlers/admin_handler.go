package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	applog "sheetshop/internal/log"
	"sheetshop/internal/services"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Sync    *services.SyncService
	Log     zerolog.Logger
}

// POST /admin/sync
// Row-level problems surface as counters in the result; only failure to
// reach the sheet at all is an error response.
func (h *AdminHandler) SyncNow(c *fiber.Ctx) error {
	res, err := h.Sync.SyncNow(c.Context())
	if err != nil {
		lg := applog.WithRequest(h.Log, c)
		lg.Error().Err(err).Msg("manual sync failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "could not reach the catalog sheet",
		})
	}
	lg := applog.WithRequest(h.Log, c)
	lg.Info().
		Int("created", res.Created).Int("updated", res.Updated).Int("errors", res.Errors).
		Msg("manual sync finished")
	return c.JSON(res)
}

// POST /admin/cache/clear?pattern=
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	pattern := c.Query("pattern")
	h.Catalog.InvalidateCaches(pattern)
	lg := applog.WithRequest(h.Log, c)
	lg.Info().Str("pattern", pattern).Msg("cache cleared")
	return c.JSON(fiber.Map{"cleared": true})
}
