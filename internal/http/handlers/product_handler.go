package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"sheetshop/internal/domain"
	applog "sheetshop/internal/log"
	"sheetshop/internal/services"
	"sheetshop/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Log     zerolog.Logger
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := domain.ProductQuery{
		SortBy:       validate.SortBy(c.Query("sortBy")),
		SortOrder:    validate.SortOrder(c.Query("sortOrder")),
		Page:         validate.Page(c.Query("page")),
		Limit:        validate.Limit(c.Query("limit")),
		ForceRefresh: c.Query("refresh") == "1",
	}

	if raw := c.Query("q"); raw != "" {
		text, ok := validate.Q(raw)
		if !ok {
			lg := applog.WithRequest(h.Log, c)
			lg.Warn().Str("field", "q").Msg("validation failed")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "enter a valid keyword (letters/numbers only)",
			})
		}
		q.Text = text
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := validate.Category(raw)
		if !ok {
			lg := applog.WithRequest(h.Log, c)
			lg.Warn().Str("field", "category").Msg("validation failed")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
		q.Category = category
	}

	page, err := h.Catalog.ListProducts(c.Context(), q)
	if err != nil {
		// An explicit failure, never a silently empty catalog.
		lg := applog.WithRequest(h.Log, c)
		lg.Error().Err(err).Msg("catalog list failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "catalog temporarily unavailable, please retry",
		})
	}
	return c.JSON(page)
}

// GET /api/v1/products/:slug
func (h *ProductHandler) BySlug(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	p, err := h.Catalog.GetProductBySlug(c.Context(), slug)
	if err != nil {
		lg := applog.WithRequest(h.Log, c)
		lg.Error().Err(err).Str("slug", slug).Msg("product lookup failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "catalog temporarily unavailable, please retry",
		})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
