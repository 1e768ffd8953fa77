package service

import (
	"context"
	"testing"
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
)

func seedOrderAt(t *testing.T, store *mockOrderStore, id string, cook domain.CookStatus, age time.Duration) {
	t.Helper()
	err := store.Create(&models.Order{
		OrderID:       id,
		TableNumber:   "3",
		Items:         testOrderInput().Items,
		TotalAmount:   200,
		PhoneNumber:   "9876543210",
		CookStatus:    cook,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now().Add(-age),
	})
	if err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
}

func TestExpireStale(t *testing.T) {
	store := newMockOrderStore()
	sink := &mockEventSink{}
	svc := NewOrderService(store, sink)

	seedOrderAt(t, store, "old-pending", domain.CookPending, 4*time.Hour)
	seedOrderAt(t, store, "old-preparing", domain.CookPreparing, 5*time.Hour)
	seedOrderAt(t, store, "fresh", domain.CookPending, time.Hour)

	// Served long ago; terminal orders are never swept.
	seedOrderAt(t, store, "old-served", domain.CookServed, 6*time.Hour)

	reaped, err := svc.ExpireStale(3 * time.Hour)
	if err != nil {
		t.Fatalf("ExpireStale: %v", err)
	}
	if reaped != 2 {
		t.Fatalf("reaped %d orders, want 2", reaped)
	}

	for _, id := range []string{"old-pending", "old-preparing"} {
		o, _ := svc.Get(id)
		if o.CookStatus != domain.CookCancelled || o.PaymentStatus != domain.PaymentRefunded {
			t.Errorf("%s = %s/%s, want Cancelled/Refunded", id, o.CookStatus, o.PaymentStatus)
		}
		if events := sink.forOrder(id); len(events) != 1 {
			t.Errorf("%s published %d events, want exactly 1", id, len(events))
		}
	}

	fresh, _ := svc.Get("fresh")
	if fresh.CookStatus != domain.CookPending || fresh.PaymentStatus != domain.PaymentPending {
		t.Errorf("fresh order touched: %s/%s", fresh.CookStatus, fresh.PaymentStatus)
	}
	served, _ := svc.Get("old-served")
	if served.CookStatus != domain.CookServed {
		t.Errorf("served order touched: %s", served.CookStatus)
	}
}

func TestExpireStaleIsIdempotent(t *testing.T) {
	store := newMockOrderStore()
	sink := &mockEventSink{}
	svc := NewOrderService(store, sink)
	seedOrderAt(t, store, "old", domain.CookPending, 4*time.Hour)

	if _, err := svc.ExpireStale(3 * time.Hour); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	reaped, err := svc.ExpireStale(3 * time.Hour)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if reaped != 0 {
		t.Errorf("second sweep reaped %d orders, want 0", reaped)
	}
	if events := sink.forOrder("old"); len(events) != 1 {
		t.Errorf("published %d events across sweeps, want 1", len(events))
	}
}

func TestReaperRunStopsOnCancel(t *testing.T) {
	store := newMockOrderStore()
	svc := NewOrderService(store, &mockEventSink{})
	seedOrderAt(t, store, "old", domain.CookPending, 4*time.Hour)

	reaper := NewReaper(svc, 5*time.Millisecond, 3*time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	// Give at least one tick time to fire, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after context cancellation")
	}

	o, _ := svc.Get("old")
	if o.CookStatus != domain.CookCancelled || o.PaymentStatus != domain.PaymentRefunded {
		t.Errorf("stale order = %s/%s, want Cancelled/Refunded", o.CookStatus, o.PaymentStatus)
	}
}
