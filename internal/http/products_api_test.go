package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"sheetshop/internal/cache"
	"sheetshop/internal/http/handlers"
	"sheetshop/internal/services"
)

type fakeFetcher struct {
	rows [][]any
	err  error
}

func (f *fakeFetcher) FetchRows(ctx context.Context) ([][]any, error) {
	return f.rows, f.err
}

func sheetRow(key, name, category, color, hex, size, sku string) []any {
	return []any{
		key, name, "desc", category, "apparel",
		"49.90", color, hex, size, sku, "", "5",
		"", "", "", "",
		"", "false", "false", "true", "2024-01-01", "2024-02-01",
	}
}

func productApp(f *fakeFetcher) *fiber.App {
	catalog := services.NewCatalogService(f, cache.New(time.Minute), cache.New(time.Minute),
		time.Minute, time.Minute, zerolog.Nop())
	deps := handlers.NewDeps(catalog, nil, zerolog.Nop())

	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/api/v1/products", deps.ProductHandler.List)
	app.Get("/api/v1/products/:slug", deps.ProductHandler.BySlug)
	return app
}

func TestProductsListEndpoint(t *testing.T) {
	app := productApp(&fakeFetcher{rows: [][]any{
		sheetRow("1", "Premium Hoodie", "hoodies", "Red", "#f00", "S", "H1"),
		sheetRow("2", "Cotton Tee", "tees", "Blue", "#00f", "M", "T1"),
	}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?q=hood", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var body struct {
		Products []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"products"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Pagination.Total != 1 || len(body.Products) != 1 || body.Products[0].Name != "Premium Hoodie" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Products[0].Slug != "premium-hoodie" {
		t.Fatalf("slug missing from payload: %+v", body.Products[0])
	}
}

func TestProductsListRejectsBadQuery(t *testing.T) {
	app := productApp(&fakeFetcher{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?q=%3Cscript%3E", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("want 400 for invalid query, got %d", resp.StatusCode)
	}
}

func TestProductsListRemoteFailureIsExplicit(t *testing.T) {
	app := productApp(&fakeFetcher{err: errors.New("api quota")})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("remote failure must not look like an empty catalog; got %d", resp.StatusCode)
	}
}

func TestProductBySlugEndpoint(t *testing.T) {
	app := productApp(&fakeFetcher{rows: [][]any{
		sheetRow("1", "Premium Hoodie", "hoodies", "Red", "#f00", "S", "H1"),
	}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/premium-hoodie", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/unknown-item", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404 for unknown slug, got %d", resp.StatusCode)
	}
}
