package handlers

import (
	"github.com/jmoiron/sqlx"

	"stockroom/internal/repos"
	"stockroom/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CategoryHandler  *CategoryHandler
	SupplierHandler  *SupplierHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	supRepo := repos.NewSupplierRepo(db)
	logRepo := repos.NewLogRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, catRepo, supRepo)
	stockSvc := services.NewStockService(prodRepo)
	reportSvc := services.NewReportService(prodRepo, logRepo)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: auth},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Stock: stockSvc},
		InventoryHandler: &InventoryHandler{Logs: logRepo, Reports: reportSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		SupplierHandler:  &SupplierHandler{Catalog: catalogSvc},
	}
}
