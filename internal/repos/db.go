package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog data if DB is empty (categories/suppliers/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Suppliers
CREATE TABLE IF NOT EXISTS suppliers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact TEXT,
  email TEXT,
  phone TEXT,
  address TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  sku TEXT UNIQUE,                -- NULL when absent; unique when present
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  low_stock_threshold INTEGER NOT NULL DEFAULT 10 CHECK (low_stock_threshold >= 0),
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  unit TEXT NOT NULL DEFAULT 'pcs',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_supplier   ON products(supplier_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Inventory audit trail. Append-only: rows are created by stock adjustments and
-- never updated or deleted. product_id intentionally carries no FK so history
-- outlives product deletion.
CREATE TABLE IF NOT EXISTS inventory_logs(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('add','remove','adjust')),
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  previous_quantity INTEGER NOT NULL CHECK (previous_quantity >= 0),
  new_quantity INTEGER NOT NULL CHECK (new_quantity >= 0),
  reason TEXT,
  user_id TEXT NOT NULL REFERENCES users(id),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_logs_product_created ON inventory_logs(product_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_logs_user_created    ON inventory_logs(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_logs_type_created    ON inventory_logs(type, created_at);

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN','STAFF')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/suppliers/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description) VALUES
	  ('beverages','Beverages','Coffee, tea and soft drinks'),
	  ('snacks','Snacks','Packaged snack foods'),
	  ('cleaning','Cleaning Supplies','Detergents and household cleaning')`)

	tx.MustExec(`INSERT INTO suppliers(id,name,contact,email,phone) VALUES
	  ('sup-acme','Acme Wholesale','Dana Reeve','orders@acmewholesale.test','555-0101'),
	  ('sup-fresh','Freshline Distributors','Sam Okafor','sales@freshline.test','555-0102')`)

	tx.MustExec(`INSERT INTO products(id,name,description,sku,category_id,supplier_id,quantity,low_stock_threshold,price,unit) VALUES
	  ('coffee-1kg','Roasted Coffee Beans 1kg','Medium roast arabica','SKU-COF-001','beverages','sup-acme',42,10,18.50,'bag'),
	  ('green-tea-50','Green Tea 50 Bags','Loose-tab green tea','SKU-TEA-001','beverages','sup-fresh',6,10,4.25,'box'),
	  ('tortilla-chips','Tortilla Chips 300g',NULL,'SKU-SNK-001','snacks','sup-fresh',0,15,2.80,'pcs'),
	  ('dish-soap','Dish Soap 750ml','Lemon scent',NULL,'cleaning','sup-acme',120,20,1.95,'pcs')`)

	return tx.Commit()
}

// seedUsers ensures one ADMIN and two STAFF exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@stockroom.test", "Admin", "ADMIN", "Passw0rd!"),
		mk("u-maya", "maya@stockroom.test", "Maya", "STAFF", "Passw0rd!"),
		mk("u-tom", "tom@stockroom.test", "Tom", "STAFF", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
