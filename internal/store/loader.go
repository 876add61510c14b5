package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/recipe-discovery/backend/config"
	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/database"
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

// Format identifies the encoding of a recipe file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file name or object key.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Open loads the recipe collection named by source.
//
// source is a file path, an s3://bucket/key URI, or a postgres:// or
// sqlite:// database URL. Any failure is a configuration error.
func Open(ctx context.Context, source, awsRegion string) (*Store, error) {
	var (
		recipes []model.Recipe
		err     error
	)

	switch {
	case strings.HasPrefix(source, "s3://"):
		var s3cfg *config.S3Config
		s3cfg, err = config.NewS3Config(ctx, awsRegion)
		if err == nil {
			recipes, err = LoadS3(ctx, s3cfg, source)
		}
	case database.IsDSN(source):
		var db *gorm.DB
		db, err = database.Open(source)
		if err == nil {
			recipes, err = LoadDB(ctx, db)
			if cerr := database.Close(db); cerr != nil {
				slog.Warn("failed to close recipe database", "error", cerr)
			}
		}
	default:
		recipes, err = LoadFile(source)
	}

	if err != nil {
		return nil, &apperror.Error{
			Kind:    apperror.KindConfiguration,
			Message: "failed to load recipes",
			Cause:   err,
			Context: map[string]any{"field": "RECIPES_SOURCE"},
		}
	}

	slog.Info("recipes loaded", "count", len(recipes))
	return New(recipes), nil
}

// LoadFile reads a JSON or YAML recipe list from path.
func LoadFile(path string) ([]model.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	return Decode(data, FormatFor(path))
}

// LoadS3 reads a JSON or YAML recipe list from an s3://bucket/key object.
func LoadS3(ctx context.Context, s3cfg *config.S3Config, uri string) ([]model.Recipe, error) {
	bucket, key, err := config.ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	data, err := s3cfg.ReadObject(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFor(key))
}

// LoadDB reads every row of the recipes table ordered by id.
func LoadDB(ctx context.Context, db *gorm.DB) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	return recipes, nil
}

// Decode parses a recipe list. Every recipe needs a title.
func Decode(data []byte, format Format) ([]model.Recipe, error) {
	var recipes []model.Recipe

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &recipes); err != nil {
			return nil, fmt.Errorf("failed to parse recipe yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &recipes); err != nil {
			return nil, fmt.Errorf("failed to parse recipe json: %w", err)
		}
	}

	for i, r := range recipes {
		if r.Title == "" {
			return nil, fmt.Errorf("recipe %d has no title", i)
		}
	}

	return recipes, nil
}
