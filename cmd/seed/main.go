// Command seed creates development users, an admin account and the
// default recipe tags. Existing users and tags are skipped.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
)

const seedPassword = "testpassword123"

var seedUsers = []models.User{
	{Email: "john.doe@example.com", Username: "johndoe", FirstName: "John", LastName: "Doe"},
	{Email: "jane.smith@example.com", Username: "janesmith", FirstName: "Jane", LastName: "Smith"},
	{Email: "bob.wilson@example.com", Username: "bobwilson", FirstName: "Bob", LastName: "Wilson"},
	{Email: "admin@example.com", Username: "admin", FirstName: "Admin", LastName: "User", IsAdmin: true},
}

var seedTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	store := repository.New(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	for _, user := range seedUsers {
		exists, err := store.UserExists(ctx, user.Email, user.Username)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to check user")
		}
		if exists {
			log.Info().Str("email", user.Email).Msg("User already exists, skipping")
			continue
		}
		user.PasswordHash = string(hash)
		if err := store.CreateUser(ctx, &user); err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
			continue
		}
		log.Info().Str("email", user.Email).Bool("admin", user.IsAdmin).Msg("Created user")
	}

	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&seedTags)
	if res.Error != nil {
		log.Fatal().Err(res.Error).Msg("failed to create tags")
	}
	log.Info().Int64("created", res.RowsAffected).Msg("Seeded tags")

	log.Info().Str("password", seedPassword).Msg("Seed users share this password")
}
