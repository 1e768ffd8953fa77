package domain

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleChef     = "chef"
)

// EventOrderStatusUpdate is published on every order transition, carrying
// the full updated order record.
const EventOrderStatusUpdate = "orderStatusUpdate"

const (
	FeedbackNew      = "New"
	FeedbackReviewed = "Reviewed"
	FeedbackResolved = "Resolved"
)

const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"
)

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
)
