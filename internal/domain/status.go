package domain

// CookStatus tracks an order's progress through the kitchen, independent of
// payment. Happy path is forward-only; Cancelled is reachable from any
// non-terminal state.
type CookStatus string

const (
	CookPending   CookStatus = "Pending"
	CookPreparing CookStatus = "Preparing"
	CookReady     CookStatus = "Ready"
	CookServed    CookStatus = "Served"
	CookCancelled CookStatus = "Cancelled"
)

var cookRank = map[CookStatus]int{
	CookPending:   0,
	CookPreparing: 1,
	CookReady:     2,
	CookServed:    3,
}

func (s CookStatus) Valid() bool {
	switch s {
	case CookPending, CookPreparing, CookReady, CookServed, CookCancelled:
		return true
	}
	return false
}

func (s CookStatus) Terminal() bool {
	return s == CookServed || s == CookCancelled
}

// CanBecome reports whether the transition s -> next is legal. Re-asserting
// the current status is allowed; moving backwards is not.
func (s CookStatus) CanBecome(next CookStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == CookCancelled {
		return true
	}
	return cookRank[next] > cookRank[s]
}

// ActiveCookStatuses are the states the stale-order reaper sweeps.
var ActiveCookStatuses = []CookStatus{CookPending, CookPreparing, CookReady}

// PaymentStatus tracks the payment axis. Failed and Refunded are terminal;
// Paid admits only Refunded.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) Terminal() bool {
	return s == PaymentFailed || s == PaymentRefunded
}

func (s PaymentStatus) CanBecome(next PaymentStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentPaid:
		return next == PaymentRefunded
	}
	return false
}
