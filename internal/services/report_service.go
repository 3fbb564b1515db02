package services

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

type ReportService struct {
	Products *repos.ProductRepo
	Logs     *repos.LogRepo
}

func NewReportService(products *repos.ProductRepo, logs *repos.LogRepo) *ReportService {
	return &ReportService{Products: products, Logs: logs}
}

const reportListCap = 10

// windowStart computes the lookback boundary for a period. "day" truncates to
// UTC midnight; "week" and "month" are rolling windows ending now.
func windowStart(now time.Time, period string) time.Time {
	now = now.UTC()
	switch period {
	case "day":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case "week":
		return now.AddDate(0, 0, -7)
	default: // month
		return now.AddDate(0, -1, 0)
	}
}

// Build assembles the dashboard report for one period. Product counts and the
// total value cover the whole catalog; stock movement sums and recent logs are
// restricted to the window.
func (s *ReportService) Build(period string) (domain.Report, error) {
	since := windowStart(time.Now(), period)

	// Whole-catalog scan for counts and value. Fine at small-business volumes;
	// known not to scale past that.
	products, err := s.Products.ListAll()
	if err != nil {
		return domain.Report{}, err
	}

	var summary domain.ReportSummary
	summary.TotalProducts = len(products)
	total := decimal.Zero
	for _, p := range products {
		switch p.StockStatus() {
		case domain.StatusLowStock:
			summary.LowStockCount++
		case domain.StatusOutOfStock:
			summary.OutOfStockCount++
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	summary.TotalValue = total

	if summary.StockAdded, err = s.Logs.SumByType(domain.LogTypeAdd, since); err != nil {
		return domain.Report{}, err
	}
	if summary.StockRemoved, err = s.Logs.SumByType(domain.LogTypeRemove, since); err != nil {
		return domain.Report{}, err
	}

	lowStock, err := s.Products.LowStock(reportListCap)
	if err != nil {
		return domain.Report{}, err
	}
	recent, err := s.Logs.Recent(since, reportListCap)
	if err != nil {
		return domain.Report{}, err
	}

	return domain.Report{
		Summary:          summary,
		LowStockProducts: lowStock,
		RecentLogs:       recent,
	}, nil
}
