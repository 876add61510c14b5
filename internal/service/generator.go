package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/llm"
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

const generateRecipeInstruction = `You are a chef who writes new recipes on request.
Respond with a single JSON object and nothing else, exactly in this shape:
{
  "title": "recipe name",
  "mealTime": "Breakfast, Lunch, Dinner or Snack",
  "ingredients": ["ingredient with quantity", "..."],
  "instructions": ["first step", "..."]
}`

// RecipeGenerator writes new recipes from a free-text prompt.
type RecipeGenerator struct {
	llm llm.Provider
}

// NewRecipeGenerator creates a new recipe generator
func NewRecipeGenerator(provider llm.Provider) *RecipeGenerator {
	return &RecipeGenerator{llm: provider}
}

// Generate asks the model for one recipe matching prompt.
func (g *RecipeGenerator) Generate(ctx context.Context, prompt string) (*model.GeneratedRecipe, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperror.Validation("prompt must not be empty")
	}

	text, err := complete(ctx, g.llm, "generate", generateRecipeInstruction, prompt)
	if err != nil {
		return nil, apperror.Generation("language model request failed", "", err)
	}

	recipe, err := ParseGeneratedRecipe(text)
	if err != nil {
		slog.Warn("recipe generation failed", "error", err, "raw", text)
		return nil, err
	}
	return recipe, nil
}

// ParseGeneratedRecipe decodes model output into a recipe. Every field must
// be present with the right type; list order is kept as given.
func ParseGeneratedRecipe(text string) (*model.GeneratedRecipe, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(stripCodeFence(text))))

	var fields struct {
		Title        *string   `json:"title"`
		MealTime     *string   `json:"mealTime"`
		Ingredients  *[]string `json:"ingredients"`
		Instructions *[]string `json:"instructions"`
	}
	if err := dec.Decode(&fields); err != nil {
		return nil, apperror.Generation("model output is not a recipe object", text, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperror.Generation("model output has trailing data", text, err)
	}

	var missing []string
	if fields.Title == nil || strings.TrimSpace(*fields.Title) == "" {
		missing = append(missing, "title")
	}
	if fields.MealTime == nil {
		missing = append(missing, "mealTime")
	}
	if fields.Ingredients == nil {
		missing = append(missing, "ingredients")
	}
	if fields.Instructions == nil {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		err := apperror.Generation("model output is missing "+strings.Join(missing, ", "), text, nil)
		err.Context = map[string]any{"missing": missing}
		return nil, err
	}

	return &model.GeneratedRecipe{
		Title:        *fields.Title,
		MealTime:     *fields.MealTime,
		Ingredients:  *fields.Ingredients,
		Instructions: *fields.Instructions,
	}, nil
}
