package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

// ReferenceService manages tags and ingredients. Anyone may read them,
// only admins may change them.
type ReferenceService struct {
	store  *repository.Store
	access *AccessPolicy
}

func NewReferenceService(store *repository.Store, access *AccessPolicy) *ReferenceService {
	return &ReferenceService{store: store, access: access}
}

func (s *ReferenceService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.store.ListTags(ctx)
}

func (s *ReferenceService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "tag not found")
	}
	return tag, nil
}

// SaveTag creates a tag when id is 0 and replaces it otherwise
func (s *ReferenceService) SaveTag(ctx context.Context, viewer types.Viewer, id uint, req *types.TagRequest) (*models.Tag, error) {
	if err := s.access.Check(viewer, uuid.Nil, ObjectReference, ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	tag := models.Tag{ID: id, Name: req.Name, Color: req.Color, Slug: req.Slug}
	if id != 0 {
		if _, err := s.GetTag(ctx, id); err != nil {
			return nil, err
		}
	}
	if err := s.store.SaveTag(ctx, &tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ConflictError("a tag with that name or slug already exists")
		}
		return nil, err
	}
	return &tag, nil
}

func (s *ReferenceService) DeleteTag(ctx context.Context, viewer types.Viewer, id uint) error {
	if err := s.access.Check(viewer, uuid.Nil, ObjectReference, ActionWrite); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		inUse, err := tx.TagInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return ConflictError("tag is used by recipes")
		}
		return inUseAs(notFoundAs(tx.DeleteTag(ctx, id), "tag not found"), "tag is used by recipes")
	})
}

// ListIngredients returns ingredients whose name starts with prefix,
// ignoring case. An empty prefix lists everything.
func (s *ReferenceService) ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	return s.store.ListIngredients(ctx, prefix)
}

func (s *ReferenceService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	ingredient, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "ingredient not found")
	}
	return ingredient, nil
}

// SaveIngredient creates an ingredient when id is 0 and replaces it otherwise
func (s *ReferenceService) SaveIngredient(ctx context.Context, viewer types.Viewer, id uint, req *types.IngredientRequest) (*models.Ingredient, error) {
	if err := s.access.Check(viewer, uuid.Nil, ObjectReference, ActionWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if id != 0 {
		if _, err := s.GetIngredient(ctx, id); err != nil {
			return nil, err
		}
	}
	ingredient := models.Ingredient{ID: id, Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.store.SaveIngredient(ctx, &ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ConflictError("this ingredient already exists with that unit")
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *ReferenceService) DeleteIngredient(ctx context.Context, viewer types.Viewer, id uint) error {
	if err := s.access.Check(viewer, uuid.Nil, ObjectReference, ActionWrite); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		inUse, err := tx.IngredientInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return ConflictError("ingredient is used by recipes")
		}
		return inUseAs(notFoundAs(tx.DeleteIngredient(ctx, id), "ingredient not found"), "ingredient is used by recipes")
	})
}

// inUseAs turns a foreign key violation from a concurrent recipe write
// into a conflict
func inUseAs(err error, message string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ConflictError(message)
	}
	return err
}
