package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"sheetshop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// FindBySKUOrName matches an existing durable product either by the
// sheet-derived sku or, for rows that predate sku stamping, by name.
// Returns (nil, nil) when nothing matches.
func (r *ProductRepo) FindBySKUOrName(sku, name string) (*domain.StoreProduct, error) {
	var p domain.StoreProduct
	err := r.db.Get(&p, `
  SELECT id, name, COALESCE(description,'') AS description, price, COALESCE(category,'') AS category,
         COALESCE(type,'') AS type, sku, COALESCE(images_json,'') AS images_json,
         COALESCE(sizes_json,'') AS sizes_json, is_new, is_bestseller, rating, reviews,
         created_at, COALESCE(updated_at,'') AS updated_at
  FROM products
  WHERE sku = ? OR name = ?
  LIMIT 1
`, sku, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(p *domain.StoreProduct) (int64, error) {
	res, err := r.db.Exec(`
  INSERT INTO products(name, description, price, category, type, sku, images_json, sizes_json,
                       is_new, is_bestseller, updated_at)
  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
`, p.Name, p.Description, p.Price, p.Category, p.Type, p.SKU, p.ImagesJSON, p.SizesJSON,
		p.IsNew, p.IsBestseller)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(p *domain.StoreProduct) error {
	_, err := r.db.Exec(`
  UPDATE products
  SET name=?, description=?, price=?, category=?, type=?, images_json=?, sizes_json=?,
      is_new=?, is_bestseller=?, updated_at=CURRENT_TIMESTAMP
  WHERE id=?
`, p.Name, p.Description, p.Price, p.Category, p.Type, p.ImagesJSON, p.SizesJSON,
		p.IsNew, p.IsBestseller, p.ID)
	return err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
