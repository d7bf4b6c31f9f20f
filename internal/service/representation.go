package service

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// Representation selects which shape of a recipe an operation speaks
type Representation int

const (
	// ReadRepresentation is the expanded form returned to clients
	ReadRepresentation Representation = iota
	// WriteRepresentation is the id-based form clients submit
	WriteRepresentation
)

func (r Representation) String() string {
	if r == WriteRepresentation {
		return "write"
	}
	return "read"
}

// RepresentationFor maps an HTTP method onto the recipe representation it
// consumes. Safe methods read, everything else writes.
func RepresentationFor(method string) Representation {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ReadRepresentation
	default:
		return WriteRepresentation
	}
}

// viewerMarks holds the per-viewer flags for a batch of recipes
type viewerMarks struct {
	favorited map[uint]bool
	inCart    map[uint]bool
}

func toRecipe(r *models.Recipe, marks viewerMarks) types.Recipe {
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return types.Recipe{
		ID:   r.ID,
		Tags: tags,
		Author: types.Author{
			ID:        r.Author.ID,
			Email:     r.Author.Email,
			Username:  r.Author.Username,
			FirstName: r.Author.FirstName,
			LastName:  r.Author.LastName,
		},
		Ingredients: lo.Map(r.Ingredients, func(item models.IngredientInRecipe, _ int) types.RecipeIngredient {
			return types.RecipeIngredient{
				ID:              item.IngredientID,
				Name:            item.Ingredient.Name,
				MeasurementUnit: item.Ingredient.MeasurementUnit,
				Amount:          item.Amount,
			}
		}),
		IsFavorited:      marks.favorited[r.ID],
		IsInShoppingCart: marks.inCart[r.ID],
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func toSummary(r *models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
