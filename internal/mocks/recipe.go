package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, author types.Viewer, req *types.RecipeWriteRequest) (*types.Recipe, error) {
	args := m.Called(ctx, author, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, viewer types.Viewer, id uint, req *types.RecipeWriteRequest) (*types.Recipe, error) {
	args := m.Called(ctx, viewer, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, viewer types.Viewer, id uint) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockRecipeService) Get(ctx context.Context, viewer types.Viewer, id uint) (*types.Recipe, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

func (m *MockRecipeService) List(ctx context.Context, viewer types.Viewer, q service.RecipeQuery) ([]types.Recipe, int64, error) {
	args := m.Called(ctx, viewer, q)
	recipes, _ := args.Get(0).([]types.Recipe)
	return recipes, args.Get(1).(int64), args.Error(2)
}

// MockRelationService is a mock implementation of service.IRelationService
type MockRelationService struct {
	mock.Mock
}

func (m *MockRelationService) Add(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) (*types.RecipeSummary, error) {
	args := m.Called(ctx, kind, user, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeSummary), args.Error(1)
}

func (m *MockRelationService) Remove(ctx context.Context, kind repository.RelationKind, user types.Viewer, recipeID uint) error {
	return m.Called(ctx, kind, user, recipeID).Error(0)
}
