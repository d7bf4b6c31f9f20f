// Command load_ingredients bulk-loads ingredient reference data from a JSON
// file of {"name", "measurement_unit"} objects. Rows already present are
// left untouched, so the command can be re-run safely.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	path := flag.String("file", "data/ingredients.json", "JSON file with ingredients")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to open ingredients file")
	}
	defer f.Close()

	ingredients, err := parseIngredients(f)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse ingredients")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	inserted, err := repository.New(db).CreateIngredients(context.Background(), ingredients)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ingredients")
	}
	log.Info().
		Int("read", len(ingredients)).
		Int64("inserted", inserted).
		Msg("Ingredients loaded")
}

// parseIngredients decodes the records, trims names and units and drops
// blank or repeated (name, unit) pairs
func parseIngredients(r io.Reader) ([]models.Ingredient, error) {
	var records []ingredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding ingredients: %w", err)
	}

	ingredients := lo.FilterMap(records, func(rec ingredientRecord, _ int) (models.Ingredient, bool) {
		ing := models.Ingredient{
			Name:            strings.TrimSpace(rec.Name),
			MeasurementUnit: strings.TrimSpace(rec.MeasurementUnit),
		}
		return ing, ing.Name != "" && ing.MeasurementUnit != ""
	})
	return lo.UniqBy(ingredients, func(ing models.Ingredient) string {
		return ing.Name + "\x00" + ing.MeasurementUnit
	}), nil
}
