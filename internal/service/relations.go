package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

var relationMessages = map[repository.RelationKind]struct{ present, absent string }{
	repository.FavoriteRelation: {
		present: "recipe is already in favorites",
		absent:  "recipe is not in favorites",
	},
	repository.PurchaseRelation: {
		present: "recipe is already in the shopping cart",
		absent:  "recipe is not in the shopping cart",
	},
}

// RelationService adds recipes to and removes them from a user's favorites
// or shopping cart. Both kinds reject a no-op toggle with a Conflict.
type RelationService struct {
	store  *repository.Store
	access *AccessPolicy
}

func NewRelationService(store *repository.Store, access *AccessPolicy) *RelationService {
	return &RelationService{store: store, access: access}
}

// Add marks the recipe and returns its compact summary
func (s *RelationService) Add(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) (*types.RecipeSummary, error) {
	if err := s.access.Check(user, uuid.Nil, ObjectRelation, ActionWrite); err != nil {
		return nil, err
	}

	var summary types.RecipeSummary
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		recipe, err := tx.GetRecipeOwner(ctx, recipeID)
		if err != nil {
			return notFoundAs(err, "recipe not found")
		}
		exists, err := tx.HasRelation(ctx, kind, user.ID, recipeID)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError(relationMessages[kind].present)
		}
		if err := tx.AddRelation(ctx, kind, user.ID, recipeID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ConflictError(relationMessages[kind].present)
			}
			return err
		}
		summary = toSummary(recipe)
		return nil
	})
	relationToggles.WithLabelValues(kind.String(), "add", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	log.Debug().Str("kind", kind.String()).Uint("recipe_id", recipeID).Str("user_id", user.ID.String()).Msg("relation added")
	return &summary, nil
}

// Remove unmarks the recipe
func (s *RelationService) Remove(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) error {
	if err := s.access.Check(user, uuid.Nil, ObjectRelation, ActionWrite); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.GetRecipeOwner(ctx, recipeID); err != nil {
			return notFoundAs(err, "recipe not found")
		}
		removed, err := tx.RemoveRelation(ctx, kind, user.ID, recipeID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return ConflictError(relationMessages[kind].absent)
		}
		return nil
	})
	relationToggles.WithLabelValues(kind.String(), "remove", outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case KindOf(err) != 0:
		return KindOf(err).String()
	default:
		return "error"
	}
}
