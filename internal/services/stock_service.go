package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

// StockService is the only write path for product quantities. Every successful
// call mutates exactly one product and appends exactly one audit row, committed
// together.
type StockService struct {
	Products *repos.ProductRepo
}

func NewStockService(products *repos.ProductRepo) *StockService {
	return &StockService{Products: products}
}

// adjustRetries bounds the optimistic read-compute-commit loop.
const adjustRetries = 3

// Adjust applies a quantity delta to a product and records it.
//
// type must be "add" or "remove"; quantity must be >= 0 (zero is accepted and
// still writes an audit row). Removing more than is on hand clamps at zero
// rather than failing; the audit row keeps the requested magnitude, so the
// trail shows what was asked for as well as what happened.
func (s *StockService) Adjust(productID, typ string, quantity int, reason, userID string) (domain.ProductDetail, error) {
	switch typ {
	case domain.LogTypeAdd, domain.LogTypeRemove:
	default:
		return domain.ProductDetail{}, invalid(`invalid type. Use "add" or "remove"`)
	}
	if quantity < 0 {
		return domain.ProductDetail{}, invalid("quantity cannot be negative")
	}
	if userID == "" {
		return domain.ProductDetail{}, invalid("missing acting user")
	}

	for attempt := 0; attempt < adjustRetries; attempt++ {
		p, err := s.Products.Get(productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ProductDetail{}, ErrProductNotFound
			}
			return domain.ProductDetail{}, err
		}

		prev := p.Quantity
		next := prev + quantity
		if typ == domain.LogTypeRemove {
			next = prev - quantity
			if next < 0 {
				next = 0 // clamp-at-zero, not an error
			}
		}

		ch := domain.StockChange{
			LogID:            uuid.NewString(),
			ProductID:        productID,
			Type:             typ,
			Quantity:         quantity,
			PreviousQuantity: prev,
			NewQuantity:      next,
			Reason:           reason,
			UserID:           userID,
			At:               time.Now().UTC(),
		}

		err = s.Products.CommitStockChange(ch)
		if errors.Is(err, repos.ErrStaleQuantity) {
			continue // another writer got there first; re-read and recompute
		}
		if err != nil {
			return domain.ProductDetail{}, err
		}
		return s.Products.GetDetail(productID)
	}

	return domain.ProductDetail{}, ErrAdjustConflict
}
