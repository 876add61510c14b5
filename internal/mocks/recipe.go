package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// MockUpstreamClient is a mock implementation of the recipe provider client
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) Search(ctx context.Context, filter model.ExtractedFilter) (json.RawMessage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockUpstreamClient) Random(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockUpstreamClient) Recipe(ctx context.Context, id int) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockFilterExtractor is a mock implementation of the filter extractor
type MockFilterExtractor struct {
	mock.Mock
}

func (m *MockFilterExtractor) Extract(ctx context.Context, prompt string) (model.ExtractedFilter, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(model.ExtractedFilter), args.Error(1)
}

// MockRecipeGenerator is a mock implementation of the recipe generator
type MockRecipeGenerator struct {
	mock.Mock
}

func (m *MockRecipeGenerator) Generate(ctx context.Context, prompt string) (*model.GeneratedRecipe, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedRecipe), args.Error(1)
}
