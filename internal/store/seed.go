package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-discovery/backend/internal/model"
)

const seedBatchSize = 100

// SeedDB creates the recipes table if needed and upserts recipes by id.
// Recipes without an id get one assigned by the database.
func SeedDB(ctx context.Context, db *gorm.DB, recipes []model.Recipe) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes table: %w", err)
	}
	if len(recipes) == 0 {
		return nil
	}

	rows := make([]model.Recipe, len(recipes))
	copy(rows, recipes)

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(&rows, seedBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}
	return nil
}
