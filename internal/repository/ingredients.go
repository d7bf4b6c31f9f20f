package repository

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/internal/models"
)

var onConflictDoNothing = clause.OnConflict{DoNothing: true}

// ListIngredients returns ingredients whose name starts with prefix,
// ignoring case. An empty prefix lists everything.
func (s *Store) ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	query := s.conn(ctx).Order("name").Order("id")
	if prefix != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(prefix))+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

func (s *Store) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.conn(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

// FindIngredients loads the ingredients with the given ids; missing ids are skipped
func (s *Store) FindIngredients(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := s.conn(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

func (s *Store) SaveIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	return s.conn(ctx).Save(ingredient).Error
}

// CreateIngredients inserts reference rows in batches, skipping ones
// that already exist
func (s *Store) CreateIngredients(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	res := s.conn(ctx).Clauses(onConflictDoNothing).CreateInBatches(ingredients, 500)
	return res.RowsAffected, res.Error
}

// IngredientInUse reports whether any recipe lists the ingredient
func (s *Store) IngredientInUse(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.IngredientInRecipe{}).Where("ingredient_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Store) DeleteIngredient(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
