package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, author types.Viewer, req *types.RecipeWriteRequest) (*types.Recipe, error)
	Update(ctx context.Context, viewer types.Viewer, id uint, req *types.RecipeWriteRequest) (*types.Recipe, error)
	Delete(ctx context.Context, viewer types.Viewer, id uint) error
	Get(ctx context.Context, viewer types.Viewer, id uint) (*types.Recipe, error)
	List(ctx context.Context, viewer types.Viewer, q RecipeQuery) ([]types.Recipe, int64, error)
}

// IRelationService defines favorite and shopping cart toggles
type IRelationService interface {
	Add(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) (*types.RecipeSummary, error)
	Remove(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) error
}

// IShoppingListService defines the shopping list download
type IShoppingListService interface {
	Render(ctx context.Context, user types.Viewer) ([]byte, error)
}

// IReferenceService defines tag and ingredient operations
type IReferenceService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	SaveTag(ctx context.Context, viewer types.Viewer, id uint, req *types.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, viewer types.Viewer, id uint) error
	ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
	SaveIngredient(ctx context.Context, viewer types.Viewer, id uint, req *types.IngredientRequest) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, viewer types.Viewer, id uint) error
}

var (
	_ IAuthService         = (*AuthService)(nil)
	_ IRecipeService       = (*RecipeService)(nil)
	_ IRelationService     = (*RelationService)(nil)
	_ IShoppingListService = (*ShoppingListService)(nil)
	_ IReferenceService    = (*ReferenceService)(nil)
)
