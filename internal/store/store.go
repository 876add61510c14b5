// Package store holds the local recipe collection.
//
// A Store is filled once before the server starts and never written again,
// so it is safe for concurrent readers without locking.
package store

import (
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// Store is a read-only, ordered recipe collection.
type Store struct {
	recipes []model.Recipe
}

// New returns a Store holding a copy of recipes in their given order.
func New(recipes []model.Recipe) *Store {
	cp := make([]model.Recipe, len(recipes))
	copy(cp, recipes)
	return &Store{recipes: cp}
}

// All returns every recipe in stored order. Callers must not modify the result.
func (s *Store) All() []model.Recipe {
	return s.recipes
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	return len(s.recipes)
}
