package repository

import (
	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(f *models.Feedback) error {
	return translate(r.db.Create(f).Error)
}

func (r *FeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FeedbackRepository) GetByOrderID(orderID string) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.db.Where("order_id = ?", orderID).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// List returns feedback newest first, optionally scoped to one order.
func (r *FeedbackRepository) List(orderID string) ([]models.Feedback, error) {
	q := r.db.Order("created_at DESC")
	if orderID != "" {
		q = q.Where("order_id = ?", orderID)
	}
	var items []models.Feedback
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *FeedbackRepository) Save(f *models.Feedback) error {
	return translate(r.db.Save(f).Error)
}
