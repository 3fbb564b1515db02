package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// CatalogService owns product CRUD and the reference-data lists. Quantity is
// not editable here; stock changes go through StockService.
type CatalogService struct {
	Products  *repos.ProductRepo
	Cats      *repos.CategoryRepo
	Suppliers *repos.SupplierRepo
}

func NewCatalogService(products *repos.ProductRepo, cats *repos.CategoryRepo, sups *repos.SupplierRepo) *CatalogService {
	return &CatalogService{Products: products, Cats: cats, Suppliers: sups}
}

// ProductInput is the validated shape for create/update.
type ProductInput struct {
	Name              string
	Description       string
	SKU               string
	CategoryID        string
	SupplierID        string
	Quantity          int
	LowStockThreshold int
	Price             decimal.Decimal
	Unit              string
}

func (s *CatalogService) List(f repos.ProductFilter, page, pageSize int) ([]domain.ProductDetail, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize
	return s.Products.List(f)
}

func (s *CatalogService) Get(id string) (domain.ProductDetail, error) {
	p, err := s.Products.GetDetail(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProductDetail{}, ErrProductNotFound
	}
	return p, err
}

func (s *CatalogService) Create(in ProductInput) (domain.ProductDetail, error) {
	if err := s.checkInput(in); err != nil {
		return domain.ProductDetail{}, err
	}

	p := domain.Product{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		SKU:               strings.TrimSpace(in.SKU),
		CategoryID:        in.CategoryID,
		SupplierID:        in.SupplierID,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		Price:             in.Price,
		Unit:              in.Unit,
	}
	if err := s.Products.Create(p); err != nil {
		if isSKUConflict(err) {
			return domain.ProductDetail{}, invalid("sku already in use")
		}
		return domain.ProductDetail{}, err
	}
	return s.Products.GetDetail(p.ID)
}

// Update rewrites the editable fields; quantity stays whatever the stock
// service last committed.
func (s *CatalogService) Update(id string, in ProductInput) (domain.ProductDetail, error) {
	if err := s.checkInput(in); err != nil {
		return domain.ProductDetail{}, err
	}

	p := domain.Product{
		ID:                id,
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		SKU:               strings.TrimSpace(in.SKU),
		CategoryID:        in.CategoryID,
		SupplierID:        in.SupplierID,
		LowStockThreshold: in.LowStockThreshold,
		Price:             in.Price,
		Unit:              in.Unit,
	}
	if err := s.Products.Update(p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ProductDetail{}, ErrProductNotFound
		}
		if isSKUConflict(err) {
			return domain.ProductDetail{}, invalid("sku already in use")
		}
		return domain.ProductDetail{}, err
	}
	return s.Products.GetDetail(id)
}

// Delete removes the product. Its audit history stays in inventory_logs.
func (s *CatalogService) Delete(id string) error {
	err := s.Products.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) { return s.Cats.List() }
func (s *CatalogService) ListSuppliers() ([]domain.Supplier, error)  { return s.Suppliers.List() }

// checkInput is the explicit validation pass at the service boundary; the
// schema constraints back it up but never surface to callers.
func (s *CatalogService) checkInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("please provide a product name")
	}
	if in.Quantity < 0 {
		return invalid("quantity cannot be negative")
	}
	if in.LowStockThreshold < 0 {
		return invalid("low stock threshold cannot be negative")
	}
	if in.Price.IsNegative() {
		return invalid("price cannot be negative")
	}
	if in.CategoryID == "" {
		return invalid("please provide a category")
	}
	if in.SupplierID == "" {
		return invalid("please provide a supplier")
	}
	if _, err := s.Cats.Get(in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}
	if _, err := s.Suppliers.Get(in.SupplierID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSupplierNotFound
		}
		return err
	}
	return nil
}

func isSKUConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: products.sku")
}
