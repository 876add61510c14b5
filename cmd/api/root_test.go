package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/store"
)

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "recipes.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"id": 1, "title": "Tacos", "region": "Mexican", "ingredients": ["tortilla"], "instructions": ["Fill"]},
		{"id": 2, "title": "Crepes", "region": "French", "ingredients": ["egg", "milk"], "instructions": ["Whisk", "Fry"]}
	]`), 0o600))
	dsn := "sqlite://" + filepath.Join(dir, "recipes.db")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed", file, dsn})
	require.NoError(t, cmd.Execute())

	s, err := store.Open(context.Background(), dsn, "")
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Crepes", s.All()[1].Title)
}

func TestSeedCommandRejectsFileTarget(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed", "recipes.json", "recipes.db"})
	cmd.SetErr(new(nopWriter))
	assert.Error(t, cmd.Execute())
}

func TestServeRequiresAPIKeys(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetErr(new(nopWriter))

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
