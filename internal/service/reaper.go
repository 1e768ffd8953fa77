package service

import (
	"context"
	"log"
	"time"
)

// Reaper periodically cancels orders that stayed active on the kitchen axis
// past the configured age.
type Reaper struct {
	orders   *OrderService
	interval time.Duration
	maxAge   time.Duration
}

func NewReaper(orders *OrderService, interval, maxAge time.Duration) *Reaper {
	return &Reaper{orders: orders, interval: interval, maxAge: maxAge}
}

// Run sweeps on a ticker until ctx is cancelled. Intended to be launched as
// a goroutine from main.
func (r *Reaper) Run(ctx context.Context) {
	log.Printf("[reaper] running: interval=%s max age=%s", r.interval, r.maxAge)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reaper] stopped")
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep runs one reap pass.
func (r *Reaper) Sweep() {
	n, err := r.orders.ExpireStale(r.maxAge)
	if err != nil {
		log.Printf("[reaper] sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[reaper] cancelled %d stale orders", n)
	}
}
