package service

import (
	"fmt"
	"sort"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/internal/repository"
)

// GSTRate is the tax rate already included in menu prices. The GST
// component of a total is total - total/(1+GSTRate).
const GSTRate = 0.18

// ReportPaymentStore is the read side of the payment ledger the reports
// aggregate over. The SQL lives in the repository; the service only shapes
// the numbers.
type ReportPaymentStore interface {
	SalesBetween(start, end time.Time) (float64, int64, error)
	DailyBreakdown(start, end time.Time) ([]repository.DailySales, error)
	ListBetween(start, end time.Time, paidOnly bool) ([]models.Payment, error)
	ListBetweenRanked(start, end time.Time) ([]models.Payment, error)
}

// ReportOrderStore supplies the paid orders behind the popular-items tally.
type ReportOrderStore interface {
	PaidBetween(start, end time.Time) ([]models.Order, error)
}

// ReportService aggregates the payment ledger and order history into the
// owner's sales reports.
type ReportService struct {
	payments ReportPaymentStore
	orders   ReportOrderStore
	now      func() time.Time
}

func NewReportService(payments ReportPaymentStore, orders ReportOrderStore) *ReportService {
	return &ReportService{payments: payments, orders: orders, now: time.Now}
}

// ReportTransaction is one ledger row shaped for report output, with the
// GST component broken out.
type ReportTransaction struct {
	ID               uint                 `json:"id"`
	OrderID          string               `json:"orderId"`
	PhoneNumber      string               `json:"phoneNumber"`
	Amount           float64              `json:"amount"`
	GSTAmount        float64              `json:"gstAmount"`
	GatewayOrderID   string               `json:"gatewayOrderId"`
	GatewayPaymentID string               `json:"gatewayPaymentId"`
	Type             string               `json:"type"` // Online | Offline
	TableNumber      string               `json:"tableNumber"`
	Status           domain.PaymentStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
}

type MonthlyReport struct {
	Month                string                  `json:"month"`
	TotalSales           float64                 `json:"totalSales"`
	NumberOfTransactions int64                   `json:"numberOfTransactions"`
	TotalGSTPaid         float64                 `json:"totalGstPaid"`
	DailyBreakdown       []repository.DailySales `json:"dailyBreakdown"`
	Transactions         []ReportTransaction     `json:"transactions"`
}

type PopularItem struct {
	Name         string  `json:"name"`
	QuantitySold float64 `json:"quantitySold"`
}

type DailyReport struct {
	Date                 string              `json:"date"`
	TotalSales           float64             `json:"totalSales"`
	NumberOfTransactions int64               `json:"numberOfTransactions"`
	TotalGSTPaid         float64             `json:"totalGstPaid"`
	PopularItems         []PopularItem       `json:"popularItems"`
	Transactions         []ReportTransaction `json:"transactions"`
}

// Monthly builds the sales report for the given calendar month. month is
// "2006-01"; empty means the current month.
func (s *ReportService) Monthly(month string) (*MonthlyReport, error) {
	var start time.Time
	if month == "" {
		n := s.now()
		start = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location())
	} else {
		var err error
		start, err = time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be in YYYY-MM form", domain.ErrValidation)
		}
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	total, count, err := s.payments.SalesBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}
	breakdown, err := s.payments.DailyBreakdown(start, end)
	if err != nil {
		return nil, fmt.Errorf("daily breakdown: %w", err)
	}
	paid, err := s.payments.ListBetween(start, end, true)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &MonthlyReport{
		Month:                start.Format("2006-01"),
		TotalSales:           round2(total),
		NumberOfTransactions: count,
		TotalGSTPaid:         round2(gstComponent(total)),
		DailyBreakdown:       breakdown,
		Transactions:         toReportTransactions(paid),
	}, nil
}

// Daily builds the report for one calendar day. date is "2006-01-02"; empty
// means today. Transactions include failed attempts, Paid rows first.
func (s *ReportService) Daily(date string) (*DailyReport, error) {
	var day time.Time
	if date == "" {
		day = s.now()
	} else {
		var err error
		day, err = time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD form", domain.ErrValidation)
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	total, count, err := s.payments.SalesBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}
	ranked, err := s.payments.ListBetweenRanked(start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	popular, err := s.popularItems(start, end)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Date:                 start.Format("2006-01-02"),
		TotalSales:           round2(total),
		NumberOfTransactions: count,
		TotalGSTPaid:         round2(gstComponent(total)),
		PopularItems:         popular,
		Transactions:         toReportTransactions(ranked),
	}, nil
}

// TodayTransactions lists every payment attempt made today, newest first.
func (s *ReportService) TodayTransactions() ([]ReportTransaction, error) {
	n := s.now()
	start := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	payments, err := s.payments.ListBetween(start, end, false)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := toReportTransactions(payments)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// popularItems tallies quantities across the items of paid orders.
func (s *ReportService) popularItems(start, end time.Time) ([]PopularItem, error) {
	orders, err := s.orders.PaidBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("list paid orders: %w", err)
	}
	tally := make(map[string]float64)
	for _, o := range orders {
		for _, item := range o.Items {
			tally[item.Name] += item.Quantity
		}
	}
	items := make([]PopularItem, 0, len(tally))
	for name, qty := range tally {
		items = append(items, PopularItem{Name: name, QuantitySold: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].QuantitySold != items[j].QuantitySold {
			return items[i].QuantitySold > items[j].QuantitySold
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func toReportTransactions(payments []models.Payment) []ReportTransaction {
	out := make([]ReportTransaction, 0, len(payments))
	for _, p := range payments {
		// A gateway payment id means the money moved online; rows without
		// one were settled at the counter.
		txType := "Offline"
		if p.GatewayPaymentID != "" {
			txType = "Online"
		}
		out = append(out, ReportTransaction{
			ID:               p.ID,
			OrderID:          p.OrderID,
			PhoneNumber:      p.PhoneNumber,
			Amount:           round2(p.Amount),
			GSTAmount:        round2(gstComponent(p.Amount)),
			GatewayOrderID:   p.GatewayOrderID,
			GatewayPaymentID: p.GatewayPaymentID,
			Type:             txType,
			TableNumber:      p.TableNumber,
			Status:           p.Status,
			CreatedAt:        p.CreatedAt,
		})
	}
	return out
}

// gstComponent extracts the tax portion of a GST-inclusive total.
func gstComponent(total float64) float64 {
	if total <= 0 {
		return 0
	}
	return total - total/(1+GSTRate)
}
