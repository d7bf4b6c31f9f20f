package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/internal/models"
)

// RecipeFilter narrows a recipe listing. Nil pointers are not applied.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Limit       int
	Offset      int
}

// CreateRecipe inserts the recipe row only; tags and ingredients are
// attached with SetRecipeTags and ReplaceRecipeIngredients.
func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	return s.conn(ctx).Omit(clause.Associations).Create(recipe).Error
}

// UpdateRecipeFields writes the given columns of one recipe
func (s *Store) UpdateRecipeFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := s.conn(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRecipeTags replaces the whole tag set of a recipe
func (s *Store) SetRecipeTags(ctx context.Context, recipeID uint, tags []models.Tag) error {
	recipe := models.Recipe{ID: recipeID}
	assoc := s.conn(ctx).Model(&recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

// ReplaceRecipeIngredients deletes every ingredient row of the recipe and
// inserts items in their place
func (s *Store) ReplaceRecipeIngredients(ctx context.Context, recipeID uint, items []models.IngredientInRecipe) error {
	db := s.conn(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&models.IngredientInRecipe{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].RecipeID = recipeID
	}
	return db.Omit("Ingredient").Create(&items).Error
}

// GetRecipe loads a recipe with its author, tags and ingredients
func (s *Store) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := preloadRecipe(s.conn(ctx)).First(&recipe, id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// GetRecipeOwner loads only the recipe row, for permission checks
func (s *Store) GetRecipeOwner(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.conn(ctx).Select("id", "author_id", "name", "image", "cooking_time").First(&recipe, id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// ListRecipes returns one page of recipes matching f, newest first, and
// the total number of matches
func (s *Store) ListRecipes(ctx context.Context, f RecipeFilter) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.filterRecipes(ctx, f).Model(&models.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	recipes := []models.Recipe{}
	if total == 0 {
		return recipes, 0, nil
	}

	query := preloadRecipe(s.filterRecipes(ctx, f)).
		Order("recipes.created_at DESC").
		Order("recipes.id DESC")
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (s *Store) filterRecipes(ctx context.Context, f RecipeFilter) *gorm.DB {
	db := s.conn(ctx)
	query := db.Model(&models.Recipe{})

	if len(f.TagSlugs) > 0 {
		tagged := db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if f.FavoritedBy != nil {
		favorites := db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *f.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorites)
	}
	if f.InCartOf != nil {
		purchases := db.Model(&models.Purchase{}).Select("recipe_id").Where("user_id = ?", *f.InCartOf)
		query = query.Where("recipes.id IN (?)", purchases)
	}
	return query
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients_in_recipes.id") }).
		Preload("Ingredients.Ingredient")
}

// DeleteRecipe removes a recipe together with every row that depends on
// it. Run it inside a transaction.
func (s *Store) DeleteRecipe(ctx context.Context, id uint) error {
	db := s.conn(ctx)
	for _, dependent := range []interface{}{
		&models.IngredientInRecipe{},
		&models.Favorite{},
		&models.Purchase{},
	} {
		if err := db.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
			return err
		}
	}
	recipe := models.Recipe{ID: id}
	if err := db.Model(&recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	res := db.Delete(&models.Recipe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
