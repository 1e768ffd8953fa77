package repository

import (
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *models.Order) error {
	return translate(r.db.Create(o).Error)
}

func (r *OrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var o models.Order
	if err := r.db.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) Save(o *models.Order) error {
	return translate(r.db.Save(o).Error)
}

// List returns all orders, optionally filtered by customer phone number,
// newest first.
func (r *OrderRepository) List(phoneNumber string) ([]models.Order, error) {
	q := r.db.Order("created_at DESC")
	if phoneNumber != "" {
		q = q.Where("phone_number = ?", phoneNumber)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// PendingVerification lists orders the manager has not yet verified and that
// are still active on the kitchen axis.
func (r *OrderRepository) PendingVerification() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("verified_by_manager = ? AND cook_status IN ?", false, domain.ActiveCookStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// ChefQueue lists manager-verified orders in active cooking states.
func (r *OrderRepository) ChefQueue() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("verified_by_manager = ? AND cook_status IN ?", true, domain.ActiveCookStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// UpdateStatusIfPaymentPending applies a narrowed conditional update: the
// order's statuses change only while its payment is still Pending, so a
// concurrent terminal transition is never clobbered. Returns rows affected.
func (r *OrderRepository) UpdateStatusIfPaymentPending(orderID string, pay domain.PaymentStatus, cook domain.CookStatus) (int64, error) {
	res := r.db.Model(&models.Order{}).
		Where("order_id = ? AND payment_status = ?", orderID, domain.PaymentPending).
		Updates(map[string]interface{}{"payment_status": pay, "cook_status": cook})
	return res.RowsAffected, translate(res.Error)
}

// FindStale returns orders still active on the kitchen axis that were
// created before the cutoff.
func (r *OrderRepository) FindStale(cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("cook_status IN ? AND created_at < ?", domain.ActiveCookStatuses, cutoff).
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// PaidBetween returns paid orders in the window; used for the popular-items
// aggregation.
func (r *OrderRepository) PaidBetween(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("payment_status = ? AND created_at BETWEEN ? AND ?", domain.PaymentPaid, start, end).
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}
