package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devstore/sales-api/internal/config"
	"github.com/devstore/sales-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Sale entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.DiscountRule{},

		// Catalog entities
		&entity.Product{},
		&entity.Cart{},
		&entity.CartItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the standard quantity discount
// tiers. Quantities of 1-3 carry no discount, so no rule row exists for them.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	rules := []*entity.DiscountRule{
		entity.NewDiscountRule(entity.MinQuantityForDiscount, entity.MinQuantityForHighDiscount-1, entity.LowDiscountPercentage),
		entity.NewDiscountRule(entity.MinQuantityForHighDiscount, entity.MaxQuantityAllowed, entity.HighDiscountPercentage),
	}

	for _, rule := range rules {
		var existing entity.DiscountRule
		err := db.Where("min_quantity = ? AND max_quantity = ?", rule.MinQuantity, rule.MaxQuantity).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(rule).Error; err != nil {
			log.Printf("Warning: failed to create discount rule %d-%d: %v", rule.MinQuantity, rule.MaxQuantity, err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
