package types

import (
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

// Author is the public summary of a recipe author
type Author struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// RecipeIngredient is an ingredient together with the amount a recipe uses
type RecipeIngredient struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Recipe is the read representation of a recipe, relative to the viewer
type Recipe struct {
	ID               uint               `json:"id"`
	Tags             []models.Tag       `json:"tags"`
	Author           Author             `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeSummary is the compact form returned by favorite and cart toggles
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}
