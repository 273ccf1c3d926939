package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"sheetshop/internal/cache"
	"sheetshop/internal/domain"
	"sheetshop/internal/repos"
	"sheetshop/internal/services"
)

func storeProductNamed(name, sku string) *domain.StoreProduct {
	return &domain.StoreProduct{Name: name, SKU: sku, Price: 10}
}

func productIDBySKU(t *testing.T, db *sqlx.DB, sku string) int64 {
	t.Helper()
	var id int64
	if err := db.Get(&id, `SELECT id FROM products WHERE sku = ?`, sku); err != nil {
		t.Fatal(err)
	}
	return id
}

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newSync(t *testing.T, f *fakeFetcher, db *sqlx.DB) *services.SyncService {
	t.Helper()
	return services.NewSyncService(f,
		repos.NewProductRepo(db), repos.NewVariantRepo(db),
		cache.New(time.Minute), 0, zerolog.Nop())
}

func TestSyncNowCreatesProductsAndVariants(t *testing.T) {
	db := memdb(t)
	svc := newSync(t, &fakeFetcher{rows: defaultRows()}, db)

	res, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("want success, got %+v", res)
	}
	if res.Processed != 3 || res.Products != 2 || res.Variants != 3 {
		t.Fatalf("bad counters: %+v", res)
	}
	// 2 products + 3 variants, all new
	if res.Created != 5 || res.Updated != 0 || res.Errors != 0 {
		t.Fatalf("bad create/update split: %+v", res)
	}

	n, err := repos.NewProductRepo(db).Count()
	if err != nil || n != 2 {
		t.Fatalf("want 2 durable products, got %d (%v)", n, err)
	}
}

func TestSyncNowSecondPassUpdates(t *testing.T) {
	db := memdb(t)
	svc := newSync(t, &fakeFetcher{rows: defaultRows()}, db)

	if _, err := svc.SyncNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 0 || res.Updated != 5 {
		t.Fatalf("second pass should only update: %+v", res)
	}

	// Still exactly one row per product and variant.
	n, _ := repos.NewProductRepo(db).Count()
	if n != 2 {
		t.Fatalf("reconciliation duplicated products: %d", n)
	}
}

func TestSyncNowMatchesExistingProductByName(t *testing.T) {
	db := memdb(t)
	// Pre-seed a durable product with a foreign sku but a matching name.
	if _, err := repos.NewProductRepo(db).Create(storeProductNamed("Premium Hoodie", "legacy-sku")); err != nil {
		t.Fatal(err)
	}

	svc := newSync(t, &fakeFetcher{rows: defaultRows()}, db)
	res, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	n, _ := repos.NewProductRepo(db).Count()
	if n != 2 {
		t.Fatalf("name match should update, not duplicate: %d products (%+v)", n, res)
	}
}

func TestSyncNowCountsBadRowsAndContinues(t *testing.T) {
	rows := defaultRows()
	rows = append(rows, sheetRow("4", "Broken", "", "misc", "", "", "S", "", "true")) // no color/sku
	db := memdb(t)
	svc := newSync(t, &fakeFetcher{rows: rows}, db)

	res, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Errors != 1 {
		t.Fatalf("bad row should count as one error: %+v", res)
	}
	if res.Products != 2 {
		t.Fatalf("valid products must still sync: %+v", res)
	}
}

func TestSyncNowFetchFailureIsFatal(t *testing.T) {
	db := memdb(t)
	svc := newSync(t, &fakeFetcher{err: context.DeadlineExceeded}, db)

	if _, err := svc.SyncNow(context.Background()); err == nil {
		t.Fatal("unreachable sheet must fail the pass")
	}
}

func TestSyncNowKeepsInactiveProducts(t *testing.T) {
	rows := [][]any{
		sheetRow("9", "Retired Jacket", "", "jackets", "Black", "#000", "L", "RJ1", "false"),
	}
	db := memdb(t)
	svc := newSync(t, &fakeFetcher{rows: rows}, db)

	res, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Products != 1 || res.Variants != 1 {
		t.Fatalf("inactive products still reconcile: %+v", res)
	}

	v, err := repos.NewVariantRepo(db).FindByKey(productIDBySKU(t, db, "9"), "Black", "RJ1")
	if err != nil || v == nil {
		t.Fatalf("variant missing: %v / %v", v, err)
	}
	if v.IsAvailable {
		t.Fatal("inactive variant must not be available")
	}
}
