package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

type testEnv struct {
	router *gin.Engine
	store  *repository.Store
	auth   *service.AuthService

	author      *models.User
	other       *models.User
	admin       *models.User
	authorToken string
	otherToken  string
	adminToken  string

	breakfast *models.Tag
	lunch     *models.Tag
	flour     *models.Ingredient
	sugar     *models.Ingredient
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testhelpers.SetupTestStore(t)
	access, err := service.NewAccessPolicy()
	require.NoError(t, err)
	auth := service.NewAuthService(store, "test-secret", time.Hour)

	deps := &api.Dependencies{
		Store:       store,
		Auth:        auth,
		Recipes:     service.NewRecipeService(store, service.NewImageService(testhelpers.NewMemoryImageStore()), access),
		Relations:   service.NewRelationService(store, access),
		Shopping:    service.NewShoppingListService(store, access),
		Reference:   service.NewReferenceService(store, access),
		RateLimiter: middleware.NewRecipeCreationRateLimiter(nil, 100, time.Hour),
		PageSize:    6,
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	api.RegisterRoutes(router, deps)

	env := &testEnv{
		router:    router,
		store:     store,
		auth:      auth,
		author:    testhelpers.CreateTestUser(t, store, "author", false),
		other:     testhelpers.CreateTestUser(t, store, "other", false),
		admin:     testhelpers.CreateTestUser(t, store, "admin", true),
		breakfast: testhelpers.CreateTestTag(t, store, "breakfast"),
		lunch:     testhelpers.CreateTestTag(t, store, "lunch"),
		flour:     testhelpers.CreateTestIngredient(t, store, "flour", "grams"),
		sugar:     testhelpers.CreateTestIngredient(t, store, "sugar", "grams"),
	}
	env.authorToken = env.token(t, env.author)
	env.otherToken = env.token(t, env.other)
	env.adminToken = env.token(t, env.admin)
	return env
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func (e *testEnv) recipePayload() map[string]interface{} {
	return map[string]interface{}{
		"tags": []uint{e.breakfast.ID},
		"ingredients": []map[string]interface{}{
			{"id": e.flour.ID, "amount": 100},
			{"id": e.sugar.ID, "amount": 20},
		},
		"name":         "Pancakes",
		"image":        testhelpers.PNGDataURI,
		"text":         "Whisk and fry.",
		"cooking_time": 15,
	}
}
