package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-discovery/backend/config"
	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/database"
	"github.com/pageza/recipe-discovery/backend/internal/model"
	"github.com/pageza/recipe-discovery/backend/internal/testdb"
)

const recipesJSON = `[
	{"id": 1, "title": "Tacos al Pastor", "region": "Mexican", "ingredients": ["pork", "pineapple", "tortilla"], "instructions": ["Marinate", "Grill", "Serve"]},
	{"id": 2, "title": "Pancakes", "region": "American", "ingredients": ["egg", "flour", "milk"], "instructions": ["Whisk", "Fry"]}
]`

const recipesYAML = `
- id: 7
  title: Pad Thai
  region: Thai
  ingredients: [noodles, egg, peanut]
  instructions:
    - Soak noodles
    - Stir fry
`

func TestStoreKeepsOrderAndCopies(t *testing.T) {
	in := []model.Recipe{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	s := New(in)
	in[0].Title = "changed"

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "a", s.All()[0].Title)
	assert.Equal(t, "c", s.All()[2].Title)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(recipesJSON), 0o600))

	recipes, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, int64(1), recipes[0].ID)
	assert.Equal(t, "Mexican", recipes[0].Region)
	assert.Equal(t, model.JSONBStringArray{"pork", "pineapple", "tortilla"}, recipes[0].Ingredients)
	assert.Equal(t, model.JSONBStringArray{"Whisk", "Fry"}, recipes[1].Instructions)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yml")
	require.NoError(t, os.WriteFile(path, []byte(recipesYAML), 0o600))

	recipes, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pad Thai", recipes[0].Title)
	assert.Equal(t, model.JSONBStringArray{"noodles", "egg", "peanut"}, recipes[0].Ingredients)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode([]byte(`{"title": "not a list"}`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"region": "Thai"}]`), FormatJSON)
	assert.EqualError(t, err, "recipe 0 has no title")
}

func TestOpenMissingFileIsConfigurationError(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "us-east-1")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type fakeObjectGetter struct {
	objects map[string]string
	input   *s3.GetObjectInput
}

func (f *fakeObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = in
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestLoadS3(t *testing.T) {
	getter := &fakeObjectGetter{objects: map[string]string{
		"recipes-bucket/seed/recipes.yaml": recipesYAML,
	}}
	s3cfg := &config.S3Config{Client: getter}

	recipes, err := LoadS3(context.Background(), s3cfg, "s3://recipes-bucket/seed/recipes.yaml")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pad Thai", recipes[0].Title)
	assert.Equal(t, "recipes-bucket", *getter.input.Bucket)

	_, err = LoadS3(context.Background(), s3cfg, "s3://recipes-bucket/missing.json")
	assert.ErrorContains(t, err, "NoSuchKey")
}

func seed(t *testing.T, dsn string) {
	t.Helper()
	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, SeedDB(context.Background(), db, []model.Recipe{
		{ID: 2, Title: "Pancakes", Region: "American", Ingredients: model.JSONBStringArray{"egg", "flour"}, Instructions: model.JSONBStringArray{"Fry"}},
		{ID: 1, Title: "Tacos", Region: "Mexican", Ingredients: model.JSONBStringArray{"tortilla"}, Instructions: model.JSONBStringArray{"Grill"}},
	}))
}

func TestOpenSQLite(t *testing.T) {
	dsn := testdb.SQLiteDSN(t)
	seed(t, dsn)

	s, err := Open(context.Background(), dsn, "")
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	assert.Equal(t, "Tacos", s.All()[0].Title)
	assert.Equal(t, model.JSONBStringArray{"egg", "flour"}, s.All()[1].Ingredients)
}

func TestOpenPostgres(t *testing.T) {
	dsn := testdb.SetupPostgres(t).DSN
	seed(t, dsn)

	s, err := Open(context.Background(), dsn, "")
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Tacos", s.All()[0].Title)
	assert.Equal(t, model.JSONBStringArray{"egg", "flour"}, s.All()[1].Ingredients)
}

func TestSeedDBUpserts(t *testing.T) {
	dsn := testdb.SQLiteDSN(t)
	seed(t, dsn)

	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, SeedDB(context.Background(), db, []model.Recipe{
		{ID: 1, Title: "Tacos al Pastor", Region: "Mexican", Ingredients: model.JSONBStringArray{"pork"}, Instructions: model.JSONBStringArray{"Grill"}},
	}))

	recipes, err := LoadDB(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Tacos al Pastor", recipes[0].Title)
	assert.Equal(t, model.JSONBStringArray{"pork"}, recipes[0].Ingredients)
}
