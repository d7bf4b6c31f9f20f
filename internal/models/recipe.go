package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uint                 `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	AuthorID    uuid.UUID            `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author      User                 `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Name        string               `gorm:"size:200;not null" json:"name"`
	Image       string               `gorm:"size:500;not null" json:"image"`
	Text        string               `gorm:"type:text;not null" json:"text"`
	CookingTime int                  `gorm:"not null;check:cooking_time > 0" json:"cooking_time"`
	Tags        []Tag                `gorm:"many2many:recipe_tags;constraint:OnDelete:RESTRICT" json:"tags"`
	Ingredients []IngredientInRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// IngredientInRecipe is the amount of one ingredient used by one recipe.
type IngredientInRecipe struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"ingredient"`
	Amount       int        `gorm:"not null;check:amount > 0" json:"amount"`
}

func (IngredientInRecipe) TableName() string {
	return "ingredients_in_recipes"
}
