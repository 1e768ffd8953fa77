package repository

import (
	"qrmenu/internal/models"

	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) List() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *MenuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *MenuRepository) Create(item *models.MenuItem) error {
	return translate(r.db.Create(item).Error)
}

func (r *MenuRepository) Save(item *models.MenuItem) error {
	return translate(r.db.Save(item).Error)
}

func (r *MenuRepository) Delete(id uint) error {
	return translate(r.db.Delete(&models.MenuItem{}, id).Error)
}
