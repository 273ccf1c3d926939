package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sheetshop/internal/domain"
)

type VariantRepo struct{ db *sqlx.DB }

func NewVariantRepo(db *sqlx.DB) *VariantRepo { return &VariantRepo{db: db} }

// FindByKey looks up a durable variant by its natural key. Returns
// (nil, nil) when absent.
func (r *VariantRepo) FindByKey(productID int64, colorName, sku string) (*domain.StoreVariant, error) {
	var v domain.StoreVariant
	err := r.db.Get(&v, `
  SELECT id, product_id, color_name, color_value, sku, price, stock_quantity, is_available,
         created_at, COALESCE(updated_at,'') AS updated_at
  FROM product_variants
  WHERE product_id = ? AND color_name = ? AND sku = ?
`, productID, colorName, sku)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VariantRepo) Create(v *domain.StoreVariant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	_, err := r.db.Exec(`
  INSERT INTO product_variants(id, product_id, color_name, color_value, sku, price,
                               stock_quantity, is_available, updated_at)
  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
`, v.ID, v.ProductID, v.ColorName, v.ColorValue, v.SKU, v.Price, v.StockQuantity, v.IsAvailable)
	return err
}

func (r *VariantRepo) Update(v *domain.StoreVariant) error {
	_, err := r.db.Exec(`
  UPDATE product_variants
  SET color_value=?, price=?, stock_quantity=?, is_available=?, updated_at=CURRENT_TIMESTAMP
  WHERE id=?
`, v.ColorValue, v.Price, v.StockQuantity, v.IsAvailable, v.ID)
	return err
}

func (r *VariantRepo) CountByProduct(productID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM product_variants WHERE product_id = ?`, productID)
	return n, err
}
