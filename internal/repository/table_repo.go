package repository

import (
	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) List() ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.Order("number ASC").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

func (r *TableRepository) GetByNumber(number int) (*models.Table, error) {
	var t models.Table
	if err := r.db.Where("number = ?", number).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TableRepository) Save(t *models.Table) error {
	return translate(r.db.Save(t).Error)
}
