package database

import (
	"log"

	"qrmenu/config"
	"qrmenu/internal/models"
	"qrmenu/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true, // duplicate-key errors surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.Order{},
		&models.Payment{},
		&models.Coupon{},
		&models.Feedback{},
		&models.MenuItem{},
		&models.Table{},
	)
}

// SeedCoupons inserts the launch coupons if the table is empty.
func SeedCoupons(db *gorm.DB) {
	repo := repository.NewCouponRepository(db)
	if n, err := repo.Count(); err != nil || n > 0 {
		return
	}
	coupons := []models.Coupon{
		{Code: "WELCOME50", DiscountAmount: 50, DiscountType: "fixed", IsActive: true},
		{Code: "SAVE10", DiscountAmount: 10, DiscountType: "percentage", IsActive: true},
		{Code: "TODAY20", DiscountAmount: 20, DiscountType: "percentage", IsActive: true},
	}
	for i := range coupons {
		if err := repo.Create(&coupons[i]); err != nil {
			log.Printf("seed coupon %s: %v", coupons[i].Code, err)
		}
	}
}
