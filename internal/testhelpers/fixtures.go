package testhelpers

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "testpassword123"

// PNGDataURI is a tiny payload that sniffs as image/png
var PNGDataURI = "data:image/png;base64," +
	base64.StdEncoding.EncodeToString(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 24)...))

// CreateTestUser inserts a user whose email and username derive from name
func CreateTestUser(t *testing.T, store *repository.Store, name string, admin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        name + "@example.com",
		Username:     name,
		FirstName:    name,
		LastName:     "Tester",
		PasswordHash: string(hash),
		IsAdmin:      admin,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// ViewerOf returns the viewer acting as user
func ViewerOf(user *models.User) types.Viewer {
	return types.Viewer{ID: user.ID, IsAdmin: user.IsAdmin}
}

func CreateTestTag(t *testing.T, store *repository.Store, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: slug, Color: "#49B64E", Slug: slug}
	if err := store.SaveTag(context.Background(), tag); err != nil {
		t.Fatalf("failed to create tag %s: %v", slug, err)
	}
	return tag
}

func CreateTestIngredient(t *testing.T, store *repository.Store, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := store.SaveIngredient(context.Background(), ingredient); err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return ingredient
}

// CreateTestRecipe stores a recipe directly through the repository,
// bypassing validation and image upload
func CreateTestRecipe(t *testing.T, store *repository.Store, author *models.User, name string, tags []models.Tag, items map[uint]int) *models.Recipe {
	t.Helper()
	ctx := context.Background()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       fmt.Sprintf("http://localhost/media/%s.png", uuid.New()),
		Text:        "Mix and cook.",
		CookingTime: 10,
	}
	err := store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		if err := tx.SetRecipeTags(ctx, recipe.ID, tags); err != nil {
			return err
		}
		rows := make([]models.IngredientInRecipe, 0, len(items))
		for id, amount := range items {
			rows = append(rows, models.IngredientInRecipe{IngredientID: id, Amount: amount})
		}
		return tx.ReplaceRecipeIngredients(ctx, recipe.ID, rows)
	})
	if err != nil {
		t.Fatalf("failed to create recipe %s: %v", name, err)
	}
	return recipe
}

// MemoryImageStore keeps uploaded images in memory
type MemoryImageStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{Objects: map[string][]byte{}}
}

func (s *MemoryImageStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return "http://localhost/media/" + key, nil
}

func (s *MemoryImageStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

// Len reports how many images are stored
func (s *MemoryImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}
