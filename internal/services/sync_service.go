package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sheetshop/internal/cache"
	"sheetshop/internal/domain"
	"sheetshop/internal/repos"
	"sheetshop/internal/sheet"
)

// SyncService drives the one-way write from the spreadsheet into the
// relational store. Reaching the sheet at all is fatal to a pass; a
// single bad product or variant only bumps the error counter.
type SyncService struct {
	fetcher  RowFetcher
	products *repos.ProductRepo
	variants *repos.VariantRepo
	lists    *cache.Cache
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewSyncService(fetcher RowFetcher, products *repos.ProductRepo, variants *repos.VariantRepo, lists *cache.Cache, interval time.Duration, log zerolog.Logger) *SyncService {
	return &SyncService{
		fetcher:  fetcher,
		products: products,
		variants: variants,
		lists:    lists,
		interval: interval,
		log:      log,
	}
}

// SyncNow runs one full reconciliation pass and returns its counters.
func (s *SyncService) SyncNow(ctx context.Context) (domain.SyncResult, error) {
	raw, err := s.fetcher.FetchRows(ctx)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("sync: %w", err)
	}

	rows, skipped := sheet.ParseRows(raw, s.log)
	groups := sheet.GroupAllRows(rows)

	res := domain.SyncResult{
		Processed: len(rows),
		Errors:    skipped,
		Products:  len(groups),
	}

	for _, p := range groups {
		productID, created, err := s.upsertProduct(p)
		if err != nil {
			res.Errors++
			s.log.Error().Err(err).Str("product", p.Name).Msg("product upsert failed")
			continue
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}

		for _, v := range p.Variants {
			created, err := s.upsertVariant(productID, v)
			if err != nil {
				res.Errors++
				s.log.Error().Err(err).Str("sku", v.SKU).Msg("variant upsert failed")
				continue
			}
			res.Variants++
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
	}

	res.Success = true
	// Catalog lists may now disagree with the durable rows admins see.
	s.lists.Invalidate("products:")

	s.log.Info().
		Int("processed", res.Processed).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("errors", res.Errors).
		Msg("sync pass finished")
	return res, nil
}

func (s *SyncService) upsertProduct(p domain.Product) (int64, bool, error) {
	images, _ := json.Marshal(p.Images)
	sizes, _ := json.Marshal(p.Sizes)
	sku := strconv.Itoa(p.ID)

	existing, err := s.products.FindBySKUOrName(sku, p.Name)
	if err != nil {
		return 0, false, err
	}

	if existing != nil {
		existing.Name = p.Name
		existing.Description = p.Description
		existing.Price = p.Price.InexactFloat64()
		existing.Category = p.Category
		existing.Type = p.Type
		existing.ImagesJSON = string(images)
		existing.SizesJSON = string(sizes)
		existing.IsNew = p.IsNew
		existing.IsBestseller = p.IsBestseller
		if err := s.products.Update(existing); err != nil {
			return 0, false, err
		}
		return existing.ID, false, nil
	}

	id, err := s.products.Create(&domain.StoreProduct{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		Category:     p.Category,
		Type:         p.Type,
		SKU:          sku,
		ImagesJSON:   string(images),
		SizesJSON:    string(sizes),
		IsNew:        p.IsNew,
		IsBestseller: p.IsBestseller,
	})
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *SyncService) upsertVariant(productID int64, v domain.Variant) (bool, error) {
	existing, err := s.variants.FindByKey(productID, v.ColorName, v.SKU)
	if err != nil {
		return false, err
	}

	if existing != nil {
		existing.ColorValue = v.ColorValue
		existing.Price = v.Price.InexactFloat64()
		existing.StockQuantity = v.Stock
		existing.IsAvailable = v.IsAvailable
		return false, s.variants.Update(existing)
	}

	return true, s.variants.Create(&domain.StoreVariant{
		ProductID:     productID,
		ColorName:     v.ColorName,
		ColorValue:    v.ColorValue,
		SKU:           v.SKU,
		Price:         v.Price.InexactFloat64(),
		StockQuantity: v.Stock,
		IsAvailable:   v.IsAvailable,
	})
}

// Start launches the background reconciliation loop: one pass right
// away, then one per interval until the context ends or Stop is called.
func (s *SyncService) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("sync: no interval configured")
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.log.Info().Dur("interval", s.interval).Msg("sync scheduler started")
	go s.loop(ctx)
	return nil
}

func (s *SyncService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.log.Info().Msg("sync scheduler stopped")
}

func (s *SyncService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *SyncService) loop(ctx context.Context) {
	defer s.wg.Done()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SyncService) runOnce(ctx context.Context) {
	if _, err := s.SyncNow(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduled sync failed")
	}
}
