package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestTagsAdminOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	req := &types.TagRequest{Name: "Dinner", Color: "#E26C2D", Slug: "dinner"}

	_, err := f.reference.SaveTag(ctx, testhelpers.ViewerOf(f.author), 0, req)
	requireKind(t, err, service.KindPermission)

	tag, err := f.reference.SaveTag(ctx, testhelpers.ViewerOf(f.admin), 0, req)
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)

	_, err = f.reference.SaveTag(ctx, testhelpers.ViewerOf(f.admin), 0, req)
	requireKind(t, err, service.KindConflict)

	tags, err := f.reference.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	requireKind(t, f.reference.DeleteTag(ctx, testhelpers.ViewerOf(f.other), tag.ID), service.KindPermission)
	require.NoError(t, f.reference.DeleteTag(ctx, testhelpers.ViewerOf(f.admin), tag.ID))
	_, err = f.reference.GetTag(ctx, tag.ID)
	requireKind(t, err, service.KindNotFound)
}

func TestTagValidation(t *testing.T) {
	f := setupFixture(t)
	admin := testhelpers.ViewerOf(f.admin)

	for name, req := range map[string]*types.TagRequest{
		"bad color":  {Name: "Dinner", Color: "orange", Slug: "dinner"},
		"short hex":  {Name: "Dinner", Color: "#FFF", Slug: "dinner"},
		"bad slug":   {Name: "Dinner", Color: "#E26C2D", Slug: "din ner"},
		"empty name": {Name: "", Color: "#E26C2D", Slug: "dinner"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.reference.SaveTag(context.Background(), admin, 0, req)
			requireKind(t, err, service.KindValidation)
		})
	}
}

func TestIngredientPrefixSearch(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	testhelpers.CreateTestIngredient(t, f.store, "Flax seeds", "g")
	testhelpers.CreateTestIngredient(t, f.store, "cauliflower", "pcs")

	found, err := f.reference.ListIngredients(ctx, "FL")
	require.NoError(t, err)
	names := make([]string, len(found))
	for i, ing := range found {
		names[i] = ing.Name
	}
	assert.ElementsMatch(t, []string{"flour", "Flax seeds"}, names)

	found, err = f.reference.ListIngredients(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, found, "wildcards are matched literally")

	all, err := f.reference.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestIngredientWrites(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	admin := testhelpers.ViewerOf(f.admin)

	_, err := f.reference.SaveIngredient(ctx, testhelpers.ViewerOf(f.other), 0, &types.IngredientRequest{Name: "salt", MeasurementUnit: "g"})
	requireKind(t, err, service.KindPermission)

	salt, err := f.reference.SaveIngredient(ctx, admin, 0, &types.IngredientRequest{Name: "salt", MeasurementUnit: "g"})
	require.NoError(t, err)

	_, err = f.reference.SaveIngredient(ctx, admin, 0, &types.IngredientRequest{Name: "salt", MeasurementUnit: "g"})
	requireKind(t, err, service.KindConflict)

	renamed, err := f.reference.SaveIngredient(ctx, admin, salt.ID, &types.IngredientRequest{Name: "sea salt", MeasurementUnit: "g"})
	require.NoError(t, err)
	assert.Equal(t, salt.ID, renamed.ID)

	_, err = f.reference.SaveIngredient(ctx, admin, 9999, &types.IngredientRequest{Name: "x", MeasurementUnit: "g"})
	requireKind(t, err, service.KindNotFound)

	require.NoError(t, f.reference.DeleteIngredient(ctx, admin, salt.ID))
	requireKind(t, f.reference.DeleteIngredient(ctx, admin, salt.ID), service.KindNotFound)
}

func TestDeleteReferenceInUse(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	admin := testhelpers.ViewerOf(f.admin)

	recipe := testhelpers.CreateTestRecipe(t, f.store, f.author, "Toast", []models.Tag{*f.lunch}, map[uint]int{f.flour.ID: 100})

	err := f.reference.DeleteTag(ctx, admin, f.lunch.ID)
	requireKind(t, err, service.KindConflict)
	assert.Contains(t, err.Error(), "tag is used by recipes")

	err = f.reference.DeleteIngredient(ctx, admin, f.flour.ID)
	requireKind(t, err, service.KindConflict)
	assert.Contains(t, err.Error(), "ingredient is used by recipes")

	got, err := f.recipes.Get(ctx, types.Viewer{}, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 1)
	assert.Len(t, got.Ingredients, 1)

	// unused reference rows still delete
	require.NoError(t, f.reference.DeleteTag(ctx, admin, f.breakfast.ID))
	require.NoError(t, f.reference.DeleteIngredient(ctx, admin, f.sugar.ID))
}
