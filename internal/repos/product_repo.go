package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

// timeLayout matches the CURRENT_TIMESTAMP text format, so string comparison
// orders chronologically. All stored timestamps are UTC.
const timeLayout = "2006-01-02 15:04:05"

// logTimeLayout adds nanoseconds so back-to-back adjustments keep a total
// order. Comparing against second-precision boundaries still works: the extra
// digits only break ties.
const logTimeLayout = "2006-01-02 15:04:05.000000000"

// ErrStaleQuantity reports that a conditional quantity update matched no row:
// another writer changed the product between read and commit.
var ErrStaleQuantity = errors.New("stale quantity")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, COALESCE(description,'') AS description, COALESCE(sku,'') AS sku,
  category_id, supplier_id, quantity, low_stock_threshold, price, unit,
  created_at, COALESCE(updated_at,'') AS updated_at`

const productDetailCols = productCols + `,
  (SELECT c.name FROM categories c WHERE c.id = p.category_id) AS category_name,
  (SELECT s.name FROM suppliers s WHERE s.id = p.supplier_id) AS supplier_name`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	p.Status = p.StockStatus()
	return p, err
}

func (r *ProductRepo) GetDetail(id string) (domain.ProductDetail, error) {
	var p domain.ProductDetail
	err := r.db.Get(&p, `SELECT `+productDetailCols+` FROM products p WHERE id = ?`, id)
	p.Status = p.StockStatus()
	return p, err
}

// ProductFilter narrows List. Zero values mean "no filter".
type ProductFilter struct {
	Search     string // matches name, sku or description, case-insensitive
	CategoryID string
	SupplierID string
	LowStock   bool // quantity at or below the product's threshold
	Limit      int
	Offset     int
}

// List returns a page of products with display names resolved, newest first,
// plus the unpaginated total for the same filter.
func (r *ProductRepo) List(f ProductFilter) ([]domain.ProductDetail, int, error) {
	where := `1=1`
	args := []any{}
	if f.Search != "" {
		q := "%" + f.Search + "%"
		where += ` AND (name LIKE ? COLLATE NOCASE OR sku LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)`
		args = append(args, q, q, q)
	}
	if f.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.SupplierID != "" {
		where += ` AND supplier_id = ?`
		args = append(args, f.SupplierID)
	}
	if f.LowStock {
		where += ` AND quantity <= low_stock_threshold`
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productDetailCols + ` FROM products p WHERE ` + where + `
  ORDER BY created_at DESC, id
  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	var out []domain.ProductDetail
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Status = out[i].StockStatus()
	}
	return out, total, nil
}

// ListAll returns every product. Full scan; fine at small-business catalog sizes
// but a known limitation for anything bigger.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC, id`)
	for i := range out {
		out[i].Status = out[i].StockStatus()
	}
	return out, err
}

// LowStock returns up to limit products with 0 < quantity <= threshold.
func (r *ProductRepo) LowStock(limit int) ([]domain.ProductDetail, error) {
	var out []domain.ProductDetail
	err := r.db.Select(&out, `
  SELECT `+productDetailCols+` FROM products p
  WHERE quantity > 0 AND quantity <= low_stock_threshold
  ORDER BY quantity, id
  LIMIT ?`, limit)
	for i := range out {
		out[i].Status = out[i].StockStatus()
	}
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
  INSERT INTO products(id, name, description, sku, category_id, supplier_id,
                       quantity, low_stock_threshold, price, unit)
  VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.SKU),
		p.CategoryID, p.SupplierID, p.Quantity, p.LowStockThreshold, p.Price, p.Unit)
	return err
}

// Update rewrites the editable fields. Quantity is deliberately excluded: the
// only write path for quantity is CommitStockChange.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
  UPDATE products
  SET name=?, description=?, sku=?, category_id=?, supplier_id=?,
      low_stock_threshold=?, price=?, unit=?, updated_at=CURRENT_TIMESTAMP
  WHERE id=?`,
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.SKU), p.CategoryID,
		p.SupplierID, p.LowStockThreshold, p.Price, p.Unit, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the product row. Audit rows in inventory_logs are retained.
func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CommitStockChange applies one stock adjustment in a single transaction: the
// quantity update, conditional on the previously read value, and the audit row.
// Returns ErrStaleQuantity when a concurrent adjustment won the race; callers
// re-read and retry.
func (r *ProductRepo) CommitStockChange(ch domain.StockChange) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
  UPDATE products
  SET quantity = ?, updated_at = CURRENT_TIMESTAMP
  WHERE id = ? AND quantity = ?`,
		ch.NewQuantity, ch.ProductID, ch.PreviousQuantity)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleQuantity
	}

	if _, err := tx.Exec(`
  INSERT INTO inventory_logs(id, product_id, type, quantity, previous_quantity,
                             new_quantity, reason, user_id, created_at)
  VALUES (?,?,?,?,?,?,?,?,?)`,
		ch.LogID, ch.ProductID, ch.Type, ch.Quantity, ch.PreviousQuantity,
		ch.NewQuantity, nullIfEmpty(ch.Reason), ch.UserID,
		ch.At.UTC().Format(logTimeLayout)); err != nil {
		return err
	}

	return tx.Commit()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
