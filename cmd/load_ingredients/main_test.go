package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
)

func TestParseIngredients(t *testing.T) {
	input := `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": " sugar ", "measurement_unit": "g "},
		{"name": "flour", "measurement_unit": "g"},
		{"name": "flour", "measurement_unit": "cup"},
		{"name": "", "measurement_unit": "g"},
		{"name": "salt", "measurement_unit": ""}
	]`

	ingredients, err := parseIngredients(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "cup"},
	}, ingredients)
}

func TestParseIngredientsInvalidJSON(t *testing.T) {
	_, err := parseIngredients(strings.NewReader(`{"name": "flour"}`))
	assert.Error(t, err)
}
