package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

// LogRepo reads the inventory audit trail. It never writes: log rows are created
// only inside ProductRepo.CommitStockChange, alongside the quantity update.
type LogRepo struct{ db *sqlx.DB }

func NewLogRepo(db *sqlx.DB) *LogRepo { return &LogRepo{db: db} }

const logViewCols = `
  l.id, l.product_id, l.type, l.quantity, l.previous_quantity, l.new_quantity,
  COALESCE(l.reason,'') AS reason, l.user_id, l.created_at,
  COALESCE(p.name,'') AS product_name,
  COALESCE(u.name,'') AS user_name`

// Products are LEFT JOINed: history rows for deleted products keep an empty name.
const logViewFrom = `
  FROM inventory_logs l
  LEFT JOIN products p ON p.id = l.product_id
  LEFT JOIN users u ON u.id = l.user_id`

// LogFilter narrows List. Start/End are YYYY-MM-DD; End is inclusive of the
// whole day. Zero values mean "no filter".
type LogFilter struct {
	ProductID string
	Type      string
	Start     string
	End       string
	Limit     int
	Offset    int
}

// List returns a page of log rows, newest first, plus the unpaginated total.
func (r *LogRepo) List(f LogFilter) ([]domain.InventoryLogView, int, error) {
	where := `1=1`
	args := []any{}
	if f.ProductID != "" {
		where += ` AND l.product_id = ?`
		args = append(args, f.ProductID)
	}
	if f.Type != "" {
		where += ` AND l.type = ?`
		args = append(args, f.Type)
	}
	if f.Start != "" {
		where += ` AND l.created_at >= ?`
		args = append(args, f.Start+" 00:00:00")
	}
	if f.End != "" {
		where += ` AND l.created_at <= ?`
		args = append(args, f.End+" 23:59:59")
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM inventory_logs l WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + logViewCols + logViewFrom + ` WHERE ` + where + `
  ORDER BY l.created_at DESC, l.id
  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	var out []domain.InventoryLogView
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// SumByType totals log quantities of one type with created_at >= since.
func (r *LogRepo) SumByType(typ string, since time.Time) (int, error) {
	var sum int
	err := r.db.Get(&sum, `
  SELECT COALESCE(SUM(quantity), 0) FROM inventory_logs
  WHERE type = ? AND created_at >= ?`, typ, since.UTC().Format(timeLayout))
	return sum, err
}

// Recent returns up to limit log rows with created_at >= since, newest first.
func (r *LogRepo) Recent(since time.Time, limit int) ([]domain.InventoryLogView, error) {
	var out []domain.InventoryLogView
	err := r.db.Select(&out, `SELECT `+logViewCols+logViewFrom+`
  WHERE l.created_at >= ?
  ORDER BY l.created_at DESC, l.id
  LIMIT ?`, since.UTC().Format(timeLayout), limit)
	return out, err
}

// ByProduct returns every log row for one product, newest first.
func (r *LogRepo) ByProduct(productID string) ([]domain.InventoryLogView, error) {
	var out []domain.InventoryLogView
	err := r.db.Select(&out, `SELECT `+logViewCols+logViewFrom+`
  WHERE l.product_id = ?
  ORDER BY l.created_at DESC, l.id`, productID)
	return out, err
}
