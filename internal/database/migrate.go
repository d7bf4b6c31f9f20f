package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// RunMigrations brings the schema up to date with the models
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		// sqlite ignores foreign keys, and with them cascades, unless asked
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Debug().Str("dialect", db.Dialector.Name()).Msg("Schema migrated")
	return nil
}
