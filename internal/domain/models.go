package domain

import "github.com/shopspring/decimal"

// VariantRow is one spreadsheet line after parsing: a single color+size
// combination of a product, still carrying the raw grouping key.
type VariantRow struct {
	ExternalKey  string
	ProductID    int // resolved from ExternalKey+Name, see sheet.ResolveProductID
	Name         string
	Description  string
	Category     string
	Type         string
	BasePrice    decimal.Decimal
	ColorName    string
	ColorHex     string
	Size         string
	SKU          string
	Price        decimal.Decimal
	Stock        int
	ImageURLs    [4]string // raw slot values, not yet normalized
	Tags         []string
	IsNew        bool
	IsBestseller bool
	IsActive     bool
	CreatedAt    string
	UpdatedAt    string
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Variant struct {
	ID          string          `json:"id"`
	ColorName   string          `json:"colorName"`
	ColorValue  string          `json:"colorValue"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stockQuantity"`
	IsAvailable bool            `json:"isAvailable"`
	Size        string          `json:"size"`
	// Empty means callers fall back to the parent product images.
	Images []string `json:"images"`
}

// Product is the ephemeral aggregate rebuilt on every cache-miss pass.
// It lives only for the TTL of a cache entry; the durable counterpart
// written by the sync reconciler is StoreProduct.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Sizes        []string        `json:"sizes"`
	Colors       []Color         `json:"colors"`
	Variants     []Variant       `json:"variants"`
	Tags         []string        `json:"tags"`
	IsNew        bool            `json:"isNew"`
	IsBestseller bool            `json:"isBestseller"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

type ProductQuery struct {
	Text         string
	Category     string
	SortBy       string
	SortOrder    string // asc | desc
	Page         int
	Limit        int
	ForceRefresh bool
}

type Pagination struct {
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	Current int  `json:"current"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// SyncResult aggregates the outcome counters of one reconciliation pass.
type SyncResult struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
	Created   int  `json:"created"`
	Updated   int  `json:"updated"`
	Errors    int  `json:"errors"`
	Products  int  `json:"products"`
	Variants  int  `json:"variants"`
}

// StoreProduct is the durable product row used for order fulfillment.
type StoreProduct struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	Category     string  `db:"category"`
	Type         string  `db:"type"`
	SKU          string  `db:"sku"`
	ImagesJSON   string  `db:"images_json"`
	SizesJSON    string  `db:"sizes_json"`
	IsNew        bool    `db:"is_new"`
	IsBestseller bool    `db:"is_bestseller"`
	Rating       float64 `db:"rating"`
	Reviews      int     `db:"reviews"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

type StoreVariant struct {
	ID            string  `db:"id"`
	ProductID     int64   `db:"product_id"`
	ColorName     string  `db:"color_name"`
	ColorValue    string  `db:"color_value"`
	SKU           string  `db:"sku"`
	Price         float64 `db:"price"`
	StockQuantity int     `db:"stock_quantity"`
	IsAvailable   bool    `db:"is_available"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}
