package service

import (
	"context"
	"encoding/json"

	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// IUpstreamClient defines the interface for recipe provider operations
type IUpstreamClient interface {
	Search(ctx context.Context, filter model.ExtractedFilter) (json.RawMessage, error)
	Random(ctx context.Context) (json.RawMessage, error)
	Recipe(ctx context.Context, id int) (json.RawMessage, error)
}

// IFilterExtractor defines the interface for prompt to filter extraction
type IFilterExtractor interface {
	Extract(ctx context.Context, prompt string) (model.ExtractedFilter, error)
}

// IRecipeGenerator defines the interface for recipe generation
type IRecipeGenerator interface {
	Generate(ctx context.Context, prompt string) (*model.GeneratedRecipe, error)
}

var (
	_ IUpstreamClient  = (*UpstreamClient)(nil)
	_ IFilterExtractor = (*FilterExtractor)(nil)
	_ IRecipeGenerator = (*RecipeGenerator)(nil)
)
