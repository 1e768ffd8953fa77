package service

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerateOrderID(t *testing.T) {
	at := time.Date(2026, 9, 1, 14, 30, 5, 0, time.UTC)
	id := GenerateOrderID(at)

	if len(id) != 16 {
		t.Fatalf("id %q has length %d, want 16", id, len(id))
	}
	if got, want := id[:12], "260901143005"; got != want {
		t.Errorf("timestamp prefix = %q, want %q", got, want)
	}
	suffix, err := strconv.Atoi(id[12:])
	if err != nil {
		t.Fatalf("suffix %q is not numeric", id[12:])
	}
	if suffix < 1000 || suffix > 9999 {
		t.Errorf("suffix = %d, want 4 digits", suffix)
	}
}

func TestGenerateOrderIDSortsByTime(t *testing.T) {
	earlier := GenerateOrderID(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	later := GenerateOrderID(time.Date(2026, 9, 1, 10, 0, 1, 0, time.UTC))
	if earlier >= later {
		t.Errorf("ids across seconds must sort chronologically: %q >= %q", earlier, later)
	}
}
