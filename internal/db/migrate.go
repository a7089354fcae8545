package db

import (
	"fmt"

	"github.com/sitewatch/sitewatch/internal/config"
	"github.com/sitewatch/sitewatch/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Apartment{},
		&models.Report{},
		&models.WorkItem{},
		&models.DigestRun{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedProject writes or updates the Project row from configuration.
func SeedProject(db *gorm.DB, cfg *config.Config) error {
	p := models.Project{
		Name:    cfg.Project,
		Address: cfg.Address,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"address"}),
	}).Create(&p)
	if result.Error != nil {
		return fmt.Errorf("db: seed project %q: %w", cfg.Project, result.Error)
	}
	return nil
}

// UpsertApartment returns the apartment with number, creating it if needed.
func UpsertApartment(db *gorm.DB, number string) (*models.Apartment, error) {
	apt := models.Apartment{Number: number}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoNothing: true,
	}).Create(&apt)
	if result.Error != nil {
		return nil, fmt.Errorf("db: upsert apartment %q: %w", number, result.Error)
	}
	if err := db.Where("number = ?", number).First(&apt).Error; err != nil {
		return nil, fmt.Errorf("db: load apartment %q: %w", number, err)
	}
	return &apt, nil
}
