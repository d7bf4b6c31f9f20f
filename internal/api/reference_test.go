package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestTags(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Tag](t, w), 2)

	body := map[string]string{"name": "Dinner", "color": "#E26C2D", "slug": "dinner"}
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/tags", env.otherToken, body).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/tags", "", body).Code)

	w = env.do(t, http.MethodPost, "/api/tags", env.adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tag := decode[models.Tag](t, w)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dinner", decode[models.Tag](t, w).Slug)

	body["name"] = "Supper"
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/tags/%d", tag.ID), env.adminToken, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Supper", decode[models.Tag](t, w).Name)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, fmt.Sprintf("/api/tags/%d", tag.ID), env.adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), "", nil).Code)
}

func TestIngredientNameFilter(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestIngredient(t, env.store, "Flax", "g")
	testhelpers.CreateTestIngredient(t, env.store, "cauliflower", "g")

	w := env.do(t, http.MethodGet, "/api/ingredients?name=fl", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]models.Ingredient](t, w)
	names := []string{}
	for _, ing := range found {
		names = append(names, ing.Name)
	}
	assert.ElementsMatch(t, []string{"Flax", "flour"}, names)

	w = env.do(t, http.MethodGet, "/api/ingredients?name=zzz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRevokedAdminLosesReferenceWrites(t *testing.T) {
	env := setupTestEnv(t)
	body := map[string]string{"name": "Dinner", "color": "#E26C2D", "slug": "dinner"}

	require.NoError(t, env.store.DB().Model(env.admin).Update("is_admin", false).Error)

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/tags", env.adminToken, body).Code)

	require.NoError(t, env.store.DB().Delete(env.other).Error)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/users/me", env.otherToken, nil).Code)
}
