package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sheetshop/internal/cache"
	"sheetshop/internal/domain"
	"sheetshop/internal/sheet"
)

// RowFetcher is the spreadsheet collaborator: one call returning the
// raw cell values of the product range.
type RowFetcher interface {
	FetchRows(ctx context.Context) ([][]any, error)
}

// CatalogService projects the sheet into queryable products. Every
// cache miss runs the full fetch -> parse -> group pipeline; results
// live only as long as their cache entry.
type CatalogService struct {
	fetcher RowFetcher
	lists   *cache.Cache // filtered+sorted lists keyed by query shape
	items   *cache.Cache // single products keyed by slug, longer TTL
	listTTL time.Duration
	itemTTL time.Duration
	log     zerolog.Logger
}

func NewCatalogService(fetcher RowFetcher, lists, items *cache.Cache, listTTL, itemTTL time.Duration, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		lists:   lists,
		items:   items,
		listTTL: listTTL,
		itemTTL: itemTTL,
		log:     log,
	}
}

// ListProducts applies text/category filtering, sorting and pagination.
// The pre-pagination result is cached per (text, category, sort) so page
// flips within the TTL never refetch the sheet.
func (s *CatalogService) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}
	q.Text = strings.TrimSpace(q.Text)

	key := listKey(q)
	if !q.ForceRefresh {
		if v, ok := s.lists.Get(key); ok {
			return paginate(v.([]domain.Product), q), nil
		}
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return domain.ProductPage{}, err
	}

	filtered := filterProducts(products, q.Text, q.Category)
	sortProducts(filtered, q.SortBy, q.SortOrder)
	s.lists.Set(key, filtered, s.listTTL)
	return paginate(filtered, q), nil
}

// GetProductBySlug resolves a single product for an item page without
// forcing callers through the list API. (nil, nil) means not found.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	key := "product:" + slug
	if v, ok := s.items.Get(key); ok {
		p := v.(domain.Product)
		return &p, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Slug == slug {
			s.items.Set(key, p, s.itemTTL)
			return &p, nil
		}
	}
	return nil, nil
}

// InvalidateCaches is the admin cache-busting hook. Empty pattern
// clears both caches.
func (s *CatalogService) InvalidateCaches(pattern string) {
	s.lists.Invalidate(pattern)
	s.items.Invalidate(pattern)
}

func (s *CatalogService) loadCatalog(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.fetcher.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	rows, skipped := sheet.ParseRows(raw, s.log)
	products := sheet.GroupRows(rows)
	s.log.Info().
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Int("products", len(products)).
		Msg("catalog rebuilt")
	return products, nil
}

func listKey(q domain.ProductQuery) string {
	return fmt.Sprintf("products:%s|%s|%s|%s",
		strings.ToLower(q.Text), q.Category, q.SortBy, q.SortOrder)
}

func filterProducts(products []domain.Product, text, category string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	needle := strings.ToLower(text)
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, field, order string) {
	desc := order == "desc"
	sort.SliceStable(products, func(i, j int) bool {
		c := compareField(products[i], products[j], field)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// compareField orders two products on one named field. An unknown field
// compares everything equal, which leaves the incoming order untouched
// under the stable sort.
func compareField(a, b domain.Product, field string) int {
	switch field {
	case "price":
		return a.Price.Cmp(b.Price)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "category":
		return strings.Compare(a.Category, b.Category)
	case "createdAt":
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	case "updatedAt":
		return strings.Compare(a.UpdatedAt, b.UpdatedAt)
	default:
		return 0
	}
}

func paginate(products []domain.Product, q domain.ProductQuery) domain.ProductPage {
	total := len(products)
	pages := 0
	if total > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}

	skip := (q.Page - 1) * q.Limit
	end := skip + q.Limit
	if skip > total {
		skip = total
	}
	if end > total {
		end = total
	}

	return domain.ProductPage{
		Products: products[skip:end],
		Pagination: domain.Pagination{
			Total:   total,
			Pages:   pages,
			Current: q.Page,
			HasNext: q.Page < pages,
			HasPrev: q.Page > 1 && total > 0,
		},
	}
}
