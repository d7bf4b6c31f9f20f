package repository

import (
	"context"

	"github.com/google/uuid"
)

// ShoppingItem is one ingredient total across a user's cart
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Total           int64
}

// ShoppingListItems sums ingredient amounts over every recipe in the
// user's cart, grouped by ingredient name and unit, ordered by name then
// unit. A (user, recipe) pair is unique in purchases, so no recipe is
// counted twice.
func (s *Store) ShoppingListItems(ctx context.Context, userID uuid.UUID) ([]ShoppingItem, error) {
	items := []ShoppingItem{}
	err := s.conn(ctx).
		Table("ingredients_in_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, CAST(SUM(ingredients_in_recipes.amount) AS BIGINT) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredients_in_recipes.ingredient_id").
		Joins("JOIN purchases ON purchases.recipe_id = ingredients_in_recipes.recipe_id").
		Where("purchases.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	return items, err
}
