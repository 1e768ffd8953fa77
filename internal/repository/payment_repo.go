package repository

import (
	"time"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return translate(r.db.Create(p).Error)
}

func (r *PaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PaymentRepository) GetByGatewayOrderID(gatewayOrderID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("gateway_order_id = ?", gatewayOrderID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// UpdateResultIfPending records the verification outcome and the gateway
// payment id, but only while the row is still Pending. A terminal row is
// left untouched (callback replays must be no-ops). Returns rows affected.
func (r *PaymentRepository) UpdateResultIfPending(gatewayOrderID string, status domain.PaymentStatus, gatewayPaymentID string) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if gatewayPaymentID != "" {
		updates["gateway_payment_id"] = gatewayPaymentID
	}
	res := r.db.Model(&models.Payment{}).
		Where("gateway_order_id = ? AND status = ?", gatewayOrderID, domain.PaymentPending).
		Updates(updates)
	return res.RowsAffected, translate(res.Error)
}

// FailIfPending is the checkout compensation: mark the attempt Failed only
// if no verification outcome has landed yet.
func (r *PaymentRepository) FailIfPending(orderID string) (int64, error) {
	res := r.db.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, domain.PaymentPending).
		Update("status", domain.PaymentFailed)
	return res.RowsAffected, translate(res.Error)
}

// SalesBetween sums paid amounts and counts paid transactions in the window.
func (r *PaymentRepository) SalesBetween(start, end time.Time) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := r.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount),0) AS total, COUNT(id) AS count").
		Where("status = ? AND created_at BETWEEN ? AND ?", domain.PaymentPaid, start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, translate(err)
	}
	return row.Total, row.Count, nil
}

type DailySales struct {
	Date         string  `json:"date"`
	Sales        float64 `json:"sales"`
	Transactions int64   `json:"transactions"`
}

// DailyBreakdown groups paid sales by calendar day.
func (r *PaymentRepository) DailyBreakdown(start, end time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := r.db.Model(&models.Payment{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(amount),0) AS sales, COUNT(id) AS transactions").
		Where("status = ? AND created_at BETWEEN ? AND ?", domain.PaymentPaid, start, end).
		Group("DATE(created_at)").
		Order("DATE(created_at) ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// ListBetween returns payments in the window, oldest first. With paidOnly it
// restricts to Paid rows.
func (r *PaymentRepository) ListBetween(start, end time.Time, paidOnly bool) ([]models.Payment, error) {
	q := r.db.Where("created_at BETWEEN ? AND ?", start, end).Order("created_at ASC")
	if paidOnly {
		q = q.Where("status = ?", domain.PaymentPaid)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, translate(err)
	}
	return payments, nil
}

// ListBetweenRanked orders Paid first, then Failed, then the rest, each by
// creation time. Used by the daily transactions report.
func (r *PaymentRepository) ListBetweenRanked(start, end time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("CASE WHEN status = 'Paid' THEN 1 WHEN status = 'Failed' THEN 2 ELSE 3 END ASC").
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err)
	}
	return payments, nil
}
