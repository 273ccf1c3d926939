package sheet

import (
	"fmt"
	"strings"

	"sheetshop/internal/domain"
)

// GroupRows folds identity-resolved variant rows into product
// aggregates for the read path. A product whose first row is inactive is
// left out entirely; the storefront never sees it.
func GroupRows(rows []domain.VariantRow) []domain.Product {
	return groupRows(rows, true)
}

// GroupAllRows is the reconciliation variant: inactive products are kept
// so their durable rows still receive stock and price updates.
func GroupAllRows(rows []domain.VariantRow) []domain.Product {
	return groupRows(rows, false)
}

func groupRows(rows []domain.VariantRow, skipInactive bool) []domain.Product {
	var order []int
	byID := map[int][]domain.VariantRow{}
	for _, r := range rows {
		if _, seen := byID[r.ProductID]; !seen {
			order = append(order, r.ProductID)
		}
		byID[r.ProductID] = append(byID[r.ProductID], r)
	}

	var products []domain.Product
	for _, id := range order {
		group := byID[id]
		first := group[0]
		if skipInactive && !first.IsActive {
			continue
		}

		p := domain.Product{
			ID:           id,
			Name:         first.Name,
			Slug:         Slugify(first.Name),
			Description:  first.Description,
			Category:     first.Category,
			Type:         first.Type,
			Price:        first.BasePrice,
			Images:       normalizeImageSlots(first.ImageURLs),
			Tags:         first.Tags,
			IsNew:        first.IsNew,
			IsBestseller: first.IsBestseller,
			CreatedAt:    first.CreatedAt,
			UpdatedAt:    first.UpdatedAt,
		}

		seenSize := map[string]bool{}
		seenColor := map[string]bool{}
		for _, r := range group {
			if !seenSize[r.Size] {
				seenSize[r.Size] = true
				p.Sizes = append(p.Sizes, r.Size)
			}
			if !seenColor[r.ColorName] {
				seenColor[r.ColorName] = true
				p.Colors = append(p.Colors, domain.Color{Name: r.ColorName, Hex: r.ColorHex})
			}
			p.Variants = append(p.Variants, domain.Variant{
				ID:          variantID(id, r.ColorName, r.Size),
				ColorName:   r.ColorName,
				ColorValue:  r.ColorHex,
				SKU:         r.SKU,
				Price:       r.Price,
				Stock:       r.Stock,
				IsAvailable: r.IsActive && r.Stock > 0,
				Size:        r.Size,
				Images:      normalizeImageSlots(r.ImageURLs),
			})
		}
		products = append(products, p)
	}
	return products
}

func variantID(productID int, color, size string) string {
	norm := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	}
	return fmt.Sprintf("%d-%s-%s", productID, norm(color), norm(size))
}
