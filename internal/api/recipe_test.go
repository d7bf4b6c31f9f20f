package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestCreateRecipeRoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/recipes", env.authorToken, env.recipePayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[types.Recipe](t, w)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[types.Recipe](t, w)

	assert.Equal(t, []types.RecipeIngredient{
		{ID: env.flour.ID, Name: "flour", MeasurementUnit: "grams", Amount: 100},
		{ID: env.sugar.ID, Name: "sugar", MeasurementUnit: "grams", Amount: 20},
	}, got.Ingredients)
	assert.Equal(t, "author", got.Author.Username)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "#49B64E", got.Tags[0].Color)
}

func TestCreateRecipeValidation(t *testing.T) {
	env := setupTestEnv(t)

	emptyTags := env.recipePayload()
	emptyTags["tags"] = []uint{}
	w := env.do(t, http.MethodPost, "/api/recipes", env.authorToken, emptyTags)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "tags", decode[map[string]string](t, w)["field"])

	dupIngredients := env.recipePayload()
	dupIngredients["ingredients"] = []map[string]interface{}{
		{"id": env.flour.ID, "amount": 1},
		{"id": env.flour.ID, "amount": 2},
	}
	w = env.do(t, http.MethodPost, "/api/recipes", env.authorToken, dupIngredients)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ingredients", decode[map[string]string](t, w)["field"])

	w = env.do(t, http.MethodPost, "/api/recipes", "", env.recipePayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, env.store.DB().Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/recipes", env.authorToken, env.recipePayload())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[types.Recipe](t, w)

	update := env.recipePayload()
	delete(update, "image")
	update["ingredients"] = []map[string]interface{}{{"id": env.sugar.ID, "amount": 7}}
	w = env.do(t, http.MethodPatch, fmt.Sprintf("/api/recipes/%d", created.ID), env.authorToken, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[types.Recipe](t, w)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, env.sugar.ID, updated.Ingredients[0].ID)
	assert.Equal(t, 7, updated.Ingredients[0].Amount)
	assert.Equal(t, created.Image, updated.Image)
}

func TestUpdateRecipeByStrangerIsForbidden(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/recipes", env.authorToken, env.recipePayload())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[types.Recipe](t, w)

	update := env.recipePayload()
	update["name"] = "Hijacked"
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/recipes/%d", created.ID), env.otherToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), env.otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), "", nil)
	assert.Equal(t, "Pancakes", decode[types.Recipe](t, w).Name)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), env.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeNotFound(t *testing.T) {
	env := setupTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/recipes/999", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/recipes/abc", "", nil).Code)
}

func TestListRecipesPagination(t *testing.T) {
	env := setupTestEnv(t)
	for i := 0; i < 8; i++ {
		testhelpers.CreateTestRecipe(t, env.store, env.author, fmt.Sprintf("recipe %d", i),
			[]models.Tag{*env.breakfast}, map[uint]int{env.flour.ID: 1})
	}

	w := env.do(t, http.MethodGet, "/api/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[types.Page[types.Recipe]](t, w)
	assert.Equal(t, int64(8), page.Count)
	assert.Len(t, page.Results, 6)
	assert.Equal(t, "recipe 7", page.Results[0].Name)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/recipes?page=2", *page.Next)
	assert.Nil(t, page.Previous)

	w = env.do(t, http.MethodGet, "/api/recipes?page=2&limit=3", "", nil)
	page = decode[types.Page[types.Recipe]](t, w)
	assert.Len(t, page.Results, 3)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/recipes?limit=3", *page.Previous)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/recipes?limit=3&page=3", *page.Next)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/recipes?page=9", "", nil).Code)
}

func TestListRecipesFilters(t *testing.T) {
	env := setupTestEnv(t)
	first := testhelpers.CreateTestRecipe(t, env.store, env.author, "first", []models.Tag{*env.breakfast}, map[uint]int{env.flour.ID: 1})
	second := testhelpers.CreateTestRecipe(t, env.store, env.other, "second", []models.Tag{*env.lunch}, map[uint]int{env.flour.ID: 1})

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", second.ID), env.authorToken, nil).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/favorite", first.ID), env.authorToken, nil).Code)

	names := func(path, token string) []string {
		w := env.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decode[types.Page[types.Recipe]](t, w)
		out := []string{}
		for _, r := range page.Results {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"second"}, names("/api/recipes?is_in_shopping_cart=1", env.authorToken))
	assert.Equal(t, []string{"first"}, names("/api/recipes?is_favorited=true", env.authorToken))
	assert.Equal(t, []string{"first"}, names("/api/recipes?tags=breakfast", ""))
	assert.Equal(t, []string{"second", "first"}, names("/api/recipes?tags=breakfast&tags=lunch", ""))
	assert.Equal(t, []string{"second"}, names("/api/recipes?author="+env.other.ID.String(), ""))
	assert.Empty(t, names("/api/recipes?is_favorited=1", ""))

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/recipes?author=nope", "", nil).Code)
}

func TestFavoriteToggle(t *testing.T) {
	env := setupTestEnv(t)
	recipe := testhelpers.CreateTestRecipe(t, env.store, env.author, "soup", []models.Tag{*env.lunch}, map[uint]int{env.flour.ID: 1})
	path := fmt.Sprintf("/api/recipes/%d/favorite", recipe.ID)

	w := env.do(t, http.MethodPost, path, env.otherToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, types.RecipeSummary{ID: recipe.ID, Name: "soup", Image: recipe.Image, CookingTime: 10}, decode[types.RecipeSummary](t, w))

	w = env.do(t, http.MethodPost, path, env.otherToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.store.DB().Model(&models.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, env.otherToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, path, env.otherToken, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, path, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/recipes/999/favorite", env.otherToken, nil).Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	env := setupTestEnv(t)
	a := testhelpers.CreateTestRecipe(t, env.store, env.author, "a", []models.Tag{*env.lunch}, map[uint]int{env.flour.ID: 100})
	b := testhelpers.CreateTestRecipe(t, env.store, env.author, "b", []models.Tag{*env.lunch}, map[uint]int{env.flour.ID: 50, env.sugar.ID: 5})

	w := env.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", env.otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	for _, r := range []*models.Recipe{a, b} {
		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", r.ID), env.otherToken, nil).Code)
	}

	w = env.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", env.otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "flour - 150, grams\nsugar - 5, grams\n", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, w.Header().Get("Content-Disposition"))

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil).Code)
}
