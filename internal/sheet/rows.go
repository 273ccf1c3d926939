package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sheetshop/internal/domain"
)

// Column layout of the product sheet. Rows shorter than colUpdated are
// padded with empty cells; humans delete trailing columns all the time.
const (
	colKey = iota
	colName
	colDescription
	colCategory
	colType
	colBasePrice
	colColorName
	colColorHex
	colSize
	colSKU
	colPrice
	colStock
	colImage1
	colImage2
	colImage3
	colImage4
	colTags
	colIsNew
	colIsBestseller
	colIsActive
	colCreated
	colUpdated
)

// ParseRow converts one raw spreadsheet row into a VariantRow.
// A blank key or name means a blank/filler row: (nil, nil), not an error.
// A row missing color, hex, size or sku is returned as (nil, err) so the
// caller can log a skipped-row warning without aborting the batch.
func ParseRow(raw []any) (row *domain.VariantRow, err error) {
	// One bad row must never take down the batch.
	defer func() {
		if r := recover(); r != nil {
			row = nil
			err = fmt.Errorf("row panic: %v", r)
		}
	}()

	key := cell(raw, colKey)
	name := cell(raw, colName)
	if key == "" || name == "" {
		return nil, nil
	}

	colorName := cell(raw, colColorName)
	colorHex := cell(raw, colColorHex)
	size := cell(raw, colSize)
	sku := cell(raw, colSKU)
	if colorName == "" || colorHex == "" || size == "" || sku == "" {
		return nil, fmt.Errorf("row %q: missing color/hex/size/sku", key)
	}

	basePrice := parseDecimal(cell(raw, colBasePrice))
	price, perr := decimal.NewFromString(cell(raw, colPrice))
	if perr != nil || price.IsNegative() {
		price = basePrice // absent or invalid variant price falls back
	}

	return &domain.VariantRow{
		ExternalKey:  key,
		Name:         name,
		Description:  cell(raw, colDescription),
		Category:     cell(raw, colCategory),
		Type:         cell(raw, colType),
		BasePrice:    basePrice,
		ColorName:    colorName,
		ColorHex:     colorHex,
		Size:         size,
		SKU:          sku,
		Price:        price,
		Stock:        parseInt(cell(raw, colStock)),
		ImageURLs:    [4]string{cell(raw, colImage1), cell(raw, colImage2), cell(raw, colImage3), cell(raw, colImage4)},
		Tags:         parseTags(cell(raw, colTags)),
		IsNew:        parseBool(cell(raw, colIsNew), false),
		IsBestseller: parseBool(cell(raw, colIsBestseller), false),
		IsActive:     parseBool(cell(raw, colIsActive), true),
		CreatedAt:    cell(raw, colCreated),
		UpdatedAt:    cell(raw, colUpdated),
	}, nil
}

// ParseRows runs ParseRow over a whole fetched range, resolves product
// identities and reports how many rows were skipped.
func ParseRows(raw [][]any, log zerolog.Logger) (rows []domain.VariantRow, skipped int) {
	for i, rr := range raw {
		row, err := ParseRow(rr)
		if err != nil {
			skipped++
			log.Warn().Err(err).Int("row", i+2).Msg("sheet row skipped")
			continue
		}
		if row == nil {
			continue // blank filler row
		}
		row.ProductID = ResolveProductID(row.ExternalKey, row.Name)
		rows = append(rows, *row)
	}
	return rows, skipped
}

func cell(raw []any, idx int) string {
	if idx >= len(raw) || raw[idx] == nil {
		return ""
	}
	switch v := raw[idx].(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseInt(s string) int {
	// Sheets hands numeric cells back as floats ("12" can arrive as "12.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func parseBool(s string, def bool) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s == "true" || s == "yes" || s == "1"
}

func parseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
