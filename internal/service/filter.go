package service

import (
	"strings"

	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// FilterByRegion returns the recipes whose region equals region, ignoring
// case. An empty region returns recipes unchanged.
func FilterByRegion(recipes []model.Recipe, region string) []model.Recipe {
	if region == "" {
		return recipes
	}

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.EqualFold(r.Region, region) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByIngredients returns the recipes containing every required
// ingredient. Membership is exact and case-sensitive; an empty requirement
// matches every recipe.
func FilterByIngredients(recipes []model.Recipe, q model.IngredientQuery) []model.Recipe {
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if containsAll(r.Ingredients, q.RequiredIngredients) {
			out = append(out, r)
		}
	}
	return out
}

func containsAll(have model.JSONBStringArray, want []string) bool {
	for _, w := range want {
		if !have.Contains(w) {
			return false
		}
	}
	return true
}
