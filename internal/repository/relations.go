package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

// RelationKind selects one of the user-to-recipe marker tables
type RelationKind int

const (
	FavoriteRelation RelationKind = iota
	PurchaseRelation
)

func (k RelationKind) String() string {
	if k == PurchaseRelation {
		return "shopping_cart"
	}
	return "favorite"
}

func (k RelationKind) row(userID uuid.UUID, recipeID uint) interface{} {
	if k == PurchaseRelation {
		return &models.Purchase{UserID: userID, RecipeID: recipeID}
	}
	return &models.Favorite{UserID: userID, RecipeID: recipeID}
}

func (k RelationKind) model() interface{} {
	if k == PurchaseRelation {
		return &models.Purchase{}
	}
	return &models.Favorite{}
}

// HasRelation reports whether the (user, recipe) pair is present
func (s *Store) HasRelation(ctx context.Context, kind RelationKind, userID uuid.UUID, recipeID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(kind.model()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) AddRelation(ctx context.Context, kind RelationKind, userID uuid.UUID, recipeID uint) error {
	return s.conn(ctx).Create(kind.row(userID, recipeID)).Error
}

// RemoveRelation deletes the pair and reports how many rows went away
func (s *Store) RemoveRelation(ctx context.Context, kind RelationKind, userID uuid.UUID, recipeID uint) (int64, error) {
	res := s.conn(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(kind.model())
	return res.RowsAffected, res.Error
}

// RelatedRecipeIDs returns which of recipeIDs the user has marked
func (s *Store) RelatedRecipeIDs(ctx context.Context, kind RelationKind, userID uuid.UUID, recipeIDs []uint) (map[uint]bool, error) {
	marked := make(map[uint]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return marked, nil
	}
	var ids []uint
	err := s.conn(ctx).Model(kind.model()).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
