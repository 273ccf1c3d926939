package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sheetshop/internal/cache"
	"sheetshop/internal/config"
	"sheetshop/internal/http/handlers"
	applog "sheetshop/internal/log"
	"sheetshop/internal/repos"
	"sheetshop/internal/services"
	"sheetshop/internal/sheet"
)

func main() {
	cfg := config.Load()
	log := applog.New(cfg.LogFile, true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	sheetClient, err := sheet.NewClient(ctx, cfg.SheetID, cfg.SheetsAPIKey, cfg.SheetRange, cfg.FetchTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("sheet client init failed")
	}

	// The two process-wide caches: query lists and single-product slugs.
	listCache := cache.New(cfg.ListTTL)
	itemCache := cache.New(cfg.ProductTTL)

	catalogSvc := services.NewCatalogService(sheetClient, listCache, itemCache, cfg.ListTTL, cfg.ProductTTL, log)
	syncSvc := services.NewSyncService(sheetClient,
		repos.NewProductRepo(db), repos.NewVariantRepo(db),
		listCache, cfg.SyncInterval, log)

	if cfg.SyncInterval > 0 {
		if err := syncSvc.Start(ctx); err != nil {
			log.Error().Err(err).Msg("sync scheduler not started")
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			lg := applog.WithRequest(log, c)
			lg.Error().Err(err).Msg("server error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())

	deps := handlers.NewDeps(catalogSvc, syncSvc, log)

	api := app.Group("/api/v1", limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.BySlug)

	admin := app.Group("/admin", handlers.RequireAdmin(cfg.AdminKeyHash, log))
	admin.Post("/sync", deps.AdminHandler.SyncNow)
	admin.Post("/cache/clear", deps.AdminHandler.ClearCache)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	go func() {
		<-ctx.Done()
		syncSvc.Stop()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
