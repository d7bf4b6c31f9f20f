package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

// RecipeQuery is a listing request as parsed from the query string
type RecipeQuery struct {
	Tags             []string
	AuthorID         *uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

// RecipeService handles recipe operations
type RecipeService struct {
	store     *repository.Store
	validator *RecipeValidator
	images    *ImageService
	access    *AccessPolicy
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store *repository.Store, images *ImageService, access *AccessPolicy) *RecipeService {
	return &RecipeService{
		store:     store,
		validator: NewRecipeValidator(store),
		images:    images,
		access:    access,
	}
}

// Create validates the payload and stores the recipe, its tags and its
// ingredient amounts in one transaction
func (s *RecipeService) Create(ctx context.Context, author types.Viewer, req *types.RecipeWriteRequest) (*types.Recipe, error) {
	if err := s.access.Check(author, uuid.Nil, ObjectRecipe, ActionCreate); err != nil {
		return nil, err
	}
	payload, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}
	if payload.Image == "" {
		return nil, ValidationError("image", "this field is required")
	}
	img, err := s.images.Save(ctx, payload.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    author.ID,
		Name:        payload.Name,
		Image:       img.URL,
		Text:        payload.Text,
		CookingTime: payload.CookingTime,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		return writeComposition(ctx, tx, recipe.ID, payload)
	})
	if err != nil {
		s.images.Discard(ctx, img)
		return nil, err
	}

	recipeWrites.WithLabelValues("create").Inc()
	log.Info().Uint("recipe_id", recipe.ID).Str("author_id", author.ID.String()).Msg("recipe created")
	return s.Get(ctx, author, recipe.ID)
}

// Update replaces tags and ingredients wholesale and overwrites the scalar
// fields. The image is only replaced when the payload carries one.
func (s *RecipeService) Update(ctx context.Context, viewer types.Viewer, id uint, req *types.RecipeWriteRequest) (*types.Recipe, error) {
	if err := s.checkWrite(ctx, viewer, id); err != nil {
		return nil, err
	}
	payload, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"name":         payload.Name,
		"text":         payload.Text,
		"cooking_time": payload.CookingTime,
	}
	var img *StoredImage
	if payload.Image != "" {
		if img, err = s.images.Save(ctx, payload.Image); err != nil {
			return nil, err
		}
		fields["image"] = img.URL
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := writeComposition(ctx, tx, id, payload); err != nil {
			return err
		}
		return tx.UpdateRecipeFields(ctx, id, fields)
	})
	if err != nil {
		s.images.Discard(ctx, img)
		return nil, notFoundAs(err, "recipe not found")
	}

	recipeWrites.WithLabelValues("update").Inc()
	return s.Get(ctx, viewer, id)
}

// Delete removes the recipe and everything that references it
func (s *RecipeService) Delete(ctx context.Context, viewer types.Viewer, id uint) error {
	if err := s.checkWrite(ctx, viewer, id); err != nil {
		return err
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.DeleteRecipe(ctx, id)
	})
	if err != nil {
		return notFoundAs(err, "recipe not found")
	}
	recipeWrites.WithLabelValues("delete").Inc()
	log.Info().Uint("recipe_id", id).Str("user_id", viewer.ID.String()).Msg("recipe deleted")
	return nil
}

// Get returns the read representation of one recipe as seen by viewer
func (s *RecipeService) Get(ctx context.Context, viewer types.Viewer, id uint) (*types.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "recipe not found")
	}
	marks, err := s.marksFor(ctx, viewer, []uint{recipe.ID})
	if err != nil {
		return nil, err
	}
	out := toRecipe(recipe, marks)
	return &out, nil
}

// List returns one page of recipes and the total number of matches.
// Favorite and cart filters match nothing for anonymous viewers.
func (s *RecipeService) List(ctx context.Context, viewer types.Viewer, q RecipeQuery) ([]types.Recipe, int64, error) {
	if (q.IsFavorited || q.IsInShoppingCart) && !viewer.Authenticated() {
		return []types.Recipe{}, 0, nil
	}

	filter := repository.RecipeFilter{
		TagSlugs: lo.Uniq(lo.Compact(q.Tags)),
		AuthorID: q.AuthorID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.IsFavorited {
		filter.FavoritedBy = &viewer.ID
	}
	if q.IsInShoppingCart {
		filter.InCartOf = &viewer.ID
	}

	recipes, total, err := s.store.ListRecipes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	ids := lo.Map(recipes, func(r models.Recipe, _ int) uint { return r.ID })
	marks, err := s.marksFor(ctx, viewer, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]types.Recipe, len(recipes))
	for i := range recipes {
		out[i] = toRecipe(&recipes[i], marks)
	}
	return out, total, nil
}

func (s *RecipeService) checkWrite(ctx context.Context, viewer types.Viewer, id uint) error {
	if !viewer.Authenticated() {
		return UnauthorizedError("authentication credentials were not provided")
	}
	recipe, err := s.store.GetRecipeOwner(ctx, id)
	if err != nil {
		return notFoundAs(err, "recipe not found")
	}
	return s.access.Check(viewer, recipe.AuthorID, ObjectRecipe, ActionWrite)
}

func (s *RecipeService) marksFor(ctx context.Context, viewer types.Viewer, ids []uint) (viewerMarks, error) {
	marks := viewerMarks{favorited: map[uint]bool{}, inCart: map[uint]bool{}}
	if !viewer.Authenticated() || len(ids) == 0 {
		return marks, nil
	}
	var err error
	if marks.favorited, err = s.store.RelatedRecipeIDs(ctx, repository.FavoriteRelation, viewer.ID, ids); err != nil {
		return marks, err
	}
	if marks.inCart, err = s.store.RelatedRecipeIDs(ctx, repository.PurchaseRelation, viewer.ID, ids); err != nil {
		return marks, err
	}
	return marks, nil
}

// writeComposition sets the tag links and ingredient rows of a recipe
func writeComposition(ctx context.Context, tx *repository.Store, recipeID uint, payload *types.RecipeWriteRequest) error {
	tags, err := tx.FindTags(ctx, payload.Tags)
	if err != nil {
		return err
	}
	if err := tx.SetRecipeTags(ctx, recipeID, tags); err != nil {
		return err
	}
	items := lo.Map(payload.Ingredients, func(item types.IngredientAmount, _ int) models.IngredientInRecipe {
		return models.IngredientInRecipe{IngredientID: item.ID, Amount: item.Amount}
	})
	return tx.ReplaceRecipeIngredients(ctx, recipeID, items)
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundError(message)
	}
	return err
}
