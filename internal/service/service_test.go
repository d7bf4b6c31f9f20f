package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

type fixture struct {
	store     *repository.Store
	images    *testhelpers.MemoryImageStore
	access    *service.AccessPolicy
	recipes   *service.RecipeService
	relations *service.RelationService
	shopping  *service.ShoppingListService
	reference *service.ReferenceService

	author *models.User
	other  *models.User
	admin  *models.User

	breakfast *models.Tag
	lunch     *models.Tag
	flour     *models.Ingredient
	sugar     *models.Ingredient
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	store := testhelpers.SetupTestStore(t)
	access, err := service.NewAccessPolicy()
	require.NoError(t, err)
	images := testhelpers.NewMemoryImageStore()

	return &fixture{
		store:     store,
		images:    images,
		access:    access,
		recipes:   service.NewRecipeService(store, service.NewImageService(images), access),
		relations: service.NewRelationService(store, access),
		shopping:  service.NewShoppingListService(store, access),
		reference: service.NewReferenceService(store, access),
		author:    testhelpers.CreateTestUser(t, store, "author", false),
		other:     testhelpers.CreateTestUser(t, store, "other", false),
		admin:     testhelpers.CreateTestUser(t, store, "admin", true),
		breakfast: testhelpers.CreateTestTag(t, store, "breakfast"),
		lunch:     testhelpers.CreateTestTag(t, store, "lunch"),
		flour:     testhelpers.CreateTestIngredient(t, store, "flour", "g"),
		sugar:     testhelpers.CreateTestIngredient(t, store, "sugar", "g"),
	}
}

func (f *fixture) validRequest() *types.RecipeWriteRequest {
	return &types.RecipeWriteRequest{
		Tags: []uint{f.breakfast.ID},
		Ingredients: []types.IngredientAmount{
			{ID: f.flour.ID, Amount: 200},
			{ID: f.sugar.ID, Amount: 50},
		},
		Name:        "Pancakes",
		Image:       testhelpers.PNGDataURI,
		Text:        "Whisk everything and fry.",
		CookingTime: 20,
	}
}

func requireKind(t *testing.T, err error, kind service.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, service.KindOf(err), "unexpected error: %v", err)
}
