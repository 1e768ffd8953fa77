package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/internal/repository"
)

func TestGSTComponent(t *testing.T) {
	// Prices are GST-inclusive: a 1180 total carries 180 of tax.
	if got := gstComponent(1180); math.Abs(got-180) > 1e-9 {
		t.Errorf("gstComponent(1180) = %v, want 180", got)
	}
	if got := gstComponent(0); got != 0 {
		t.Errorf("gstComponent(0) = %v, want 0", got)
	}
	if got := gstComponent(-50); got != 0 {
		t.Errorf("gstComponent(-50) = %v, want 0", got)
	}
}

func TestToReportTransactions(t *testing.T) {
	rows := toReportTransactions([]models.Payment{{
		ID:               1,
		OrderID:          "2609011430051234",
		Amount:           1180,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		TableNumber:      "4",
		Status:           domain.PaymentPaid,
	}})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].GSTAmount != 180 {
		t.Errorf("gst = %v, want 180", rows[0].GSTAmount)
	}
	if rows[0].Amount != 1180 || rows[0].Status != domain.PaymentPaid {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[0].Type != "Online" {
		t.Errorf("type = %q, want Online", rows[0].Type)
	}

	offline := toReportTransactions([]models.Payment{{OrderID: "x", Amount: 100}})
	if offline[0].Type != "Offline" {
		t.Errorf("type = %q, want Offline", offline[0].Type)
	}
}

func TestMonthlyReport(t *testing.T) {
	t.Run("aggregates the requested month", func(t *testing.T) {
		payments := &mockReportPaymentStore{
			sales: 2360,
			count: 2,
			breakdown: []repository.DailySales{
				{Date: "2026-08-14", Sales: 1180, Transactions: 1},
				{Date: "2026-08-15", Sales: 1180, Transactions: 1},
			},
			payments: []models.Payment{
				{ID: 1, OrderID: "a", Amount: 1180, GatewayPaymentID: "pay_1", Status: domain.PaymentPaid},
				{ID: 2, OrderID: "b", Amount: 1180, Status: domain.PaymentPaid},
			},
		}
		svc := NewReportService(payments, &mockReportOrderStore{})

		report, err := svc.Monthly("2026-08")
		if err != nil {
			t.Fatalf("Monthly: %v", err)
		}
		if report.Month != "2026-08" || report.TotalSales != 2360 || report.NumberOfTransactions != 2 {
			t.Errorf("report = %s/%v/%d", report.Month, report.TotalSales, report.NumberOfTransactions)
		}
		if report.TotalGSTPaid != 360 {
			t.Errorf("gst = %v, want 360", report.TotalGSTPaid)
		}
		if len(report.DailyBreakdown) != 2 || len(report.Transactions) != 2 {
			t.Errorf("breakdown/transactions = %d/%d, want 2/2", len(report.DailyBreakdown), len(report.Transactions))
		}
		if report.Transactions[0].Type != "Online" || report.Transactions[1].Type != "Offline" {
			t.Errorf("types = %s/%s", report.Transactions[0].Type, report.Transactions[1].Type)
		}

		window := payments.salesWindows[0]
		wantStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
		if !window[0].Equal(wantStart) {
			t.Errorf("window start = %v, want %v", window[0], wantStart)
		}
		if wantEnd := wantStart.AddDate(0, 1, 0).Add(-time.Nanosecond); !window[1].Equal(wantEnd) {
			t.Errorf("window end = %v, want %v", window[1], wantEnd)
		}
		if len(payments.listPaidOnly) != 1 || !payments.listPaidOnly[0] {
			t.Error("monthly transactions must be restricted to Paid rows")
		}
	})

	t.Run("empty month means the current one", func(t *testing.T) {
		payments := &mockReportPaymentStore{}
		svc := NewReportService(payments, &mockReportOrderStore{})
		svc.now = func() time.Time { return time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local) }

		report, err := svc.Monthly("")
		if err != nil {
			t.Fatalf("Monthly: %v", err)
		}
		if report.Month != "2026-09" {
			t.Errorf("month = %q, want 2026-09", report.Month)
		}
	})

	t.Run("malformed month is a validation error", func(t *testing.T) {
		svc := NewReportService(&mockReportPaymentStore{}, &mockReportOrderStore{})
		if _, err := svc.Monthly("August 2026"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("store errors propagate", func(t *testing.T) {
		boom := errors.New("db down")
		svc := NewReportService(&mockReportPaymentStore{err: boom}, &mockReportOrderStore{})
		if _, err := svc.Monthly("2026-08"); !errors.Is(err, boom) {
			t.Errorf("err = %v, want wrapped %v", err, boom)
		}
	})
}

func TestDailyReport(t *testing.T) {
	t.Run("ranks transactions and tallies popular items", func(t *testing.T) {
		payments := &mockReportPaymentStore{
			sales: 1180,
			count: 1,
			ranked: []models.Payment{
				{ID: 1, OrderID: "a", Amount: 1180, GatewayPaymentID: "pay_1", Status: domain.PaymentPaid},
				{ID: 2, OrderID: "b", Amount: 590, Status: domain.PaymentFailed},
			},
		}
		orders := &mockReportOrderStore{orders: []models.Order{
			{OrderID: "a", Items: models.OrderItems{
				{Name: "Dosa", Quantity: 2, Price: 80},
				{Name: "Chai", Quantity: 1, Price: 20},
			}},
			{OrderID: "c", Items: models.OrderItems{
				{Name: "Chai", Quantity: 1, Price: 20},
				{Name: "Idli", Quantity: 2, Price: 60},
			}},
		}}
		svc := NewReportService(payments, orders)

		report, err := svc.Daily("2026-08-15")
		if err != nil {
			t.Fatalf("Daily: %v", err)
		}
		if report.Date != "2026-08-15" || report.TotalSales != 1180 || report.NumberOfTransactions != 1 {
			t.Errorf("report = %s/%v/%d", report.Date, report.TotalSales, report.NumberOfTransactions)
		}
		if report.TotalGSTPaid != 180 {
			t.Errorf("gst = %v, want 180", report.TotalGSTPaid)
		}
		if len(report.Transactions) != 2 || report.Transactions[1].Status != domain.PaymentFailed {
			t.Errorf("transactions = %+v", report.Transactions)
		}

		// Ties break alphabetically; quantity descends.
		want := []PopularItem{
			{Name: "Chai", QuantitySold: 2},
			{Name: "Dosa", QuantitySold: 2},
			{Name: "Idli", QuantitySold: 2},
		}
		if len(report.PopularItems) != len(want) {
			t.Fatalf("popular items = %+v", report.PopularItems)
		}
		for i := range want {
			if report.PopularItems[i] != want[i] {
				t.Errorf("popular[%d] = %+v, want %+v", i, report.PopularItems[i], want[i])
			}
		}
	})

	t.Run("malformed date is a validation error", func(t *testing.T) {
		svc := NewReportService(&mockReportPaymentStore{}, &mockReportOrderStore{})
		if _, err := svc.Daily("15/08/2026"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestTodayTransactions(t *testing.T) {
	payments := &mockReportPaymentStore{payments: []models.Payment{
		{ID: 1, OrderID: "a", Amount: 100},
		{ID: 2, OrderID: "b", Amount: 200},
	}}
	svc := NewReportService(payments, &mockReportOrderStore{})
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 18, 30, 0, 0, time.Local) }

	out, err := svc.TodayTransactions()
	if err != nil {
		t.Fatalf("TodayTransactions: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 1 {
		t.Errorf("order = %+v, want newest first", out)
	}
	if len(payments.listPaidOnly) != 1 || payments.listPaidOnly[0] {
		t.Error("today's listing must include failed attempts")
	}
}
