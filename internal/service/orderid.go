package service

import (
	"math/rand"
	"strconv"
	"time"
)

// GenerateOrderID builds the human-readable order identifier: a
// YYMMDDHHMMSS prefix taken from t plus a random 4-digit suffix so orders
// created within the same second stay distinct. Collisions are resolved by
// the retry loop in OrderService.Create.
func GenerateOrderID(t time.Time) string {
	suffix := 1000 + rand.Intn(9000)
	return t.Format("060102150405") + strconv.Itoa(suffix)
}
