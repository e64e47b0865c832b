package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, env string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.LogLevel, env)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// LogLevel picks the gorm log level. An explicit level wins; otherwise
// production only logs warnings and everything else logs SQL.
func LogLevel(level, env string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	}
	if env == "production" {
		return logger.Warn
	}
	return logger.Info
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&entity.Customer{},
		&entity.Employee{},
		&entity.Site{},
		&entity.Project{},
		&entity.Budget{},
		&entity.BudgetItem{},
		&entity.WorkshopProfile{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the workshop profile from configuration when none
// exists yet. Existing profiles are left untouched.
func SeedDefaultData(db *gorm.DB, cfg *config.WorkshopConfig) error {
	log.Println("Seeding default data...")

	var existing entity.WorkshopProfile
	err := db.Order("created_at ASC").First(&existing).Error
	if err == nil {
		log.Printf("Workshop profile already exists: %s", existing.Name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load workshop profile: %w", err)
	}

	profile := entity.WorkshopProfile{
		Name:     cfg.Name,
		Address:  cfg.Address,
		Phone:    cfg.Phone,
		Email:    cfg.Email,
		Currency: cfg.Currency,
		Timezone: cfg.Timezone,
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create workshop profile: %w", err)
	}

	log.Println("Default data seeding completed")
	return nil
}
