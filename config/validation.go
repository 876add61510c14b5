package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
)

// envNames maps Config fields to the settings operators actually set
var envNames = map[string]string{
	"SpoonacularAPIKey":  "SPOONACULAR_API_KEY",
	"SpoonacularBaseURL": "SPOONACULAR_BASE_URL",
	"SearchResultCount":  "SEARCH_RESULT_COUNT",
	"BrowseResultCount":  "BROWSE_RESULT_COUNT",
	"BrowseSource":       "BROWSE_SOURCE",
	"UpstreamTimeout":    "UPSTREAM_TIMEOUT",
	"LLMProvider":        "LLM_PROVIDER",
	"LLMAPIKey":          "LLM_API_KEY",
	"LLMBaseURL":         "LLM_BASE_URL",
	"LLMTimeout":         "LLM_TIMEOUT",
	"LogLevel":           "LOG_LEVEL",
}

var validate = validator.New()

// ValidateConfig checks the configuration and returns a configuration error
// listing every problem found
func ValidateConfig(cfg *Config) error {
	var problems []string
	var fields []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperror.Internal("failed to validate configuration", err)
		}
		for _, fe := range verrs {
			name := envName(fe.Field())
			fields = append(fields, name)
			problems = append(problems, describe(name, fe))
		}
	}

	if cfg.RecipesSource == "" {
		fields = append(fields, "RECIPES_SOURCE")
		problems = append(problems, "RECIPES_SOURCE is required")
	}
	if cfg.UpstreamTimeout <= 0 {
		fields = append(fields, "UPSTREAM_TIMEOUT")
		problems = append(problems, "UPSTREAM_TIMEOUT must be positive")
	}
	if cfg.LLMTimeout <= 0 {
		fields = append(fields, "LLM_TIMEOUT")
		problems = append(problems, "LLM_TIMEOUT must be positive")
	}

	// Same check cors.New panics on
	origins := cors.Config{AllowOrigins: cfg.CORSAllowedOrigins}
	if err := origins.Validate(); err != nil {
		fields = append(fields, "CORS_ALLOWED_ORIGINS")
		problems = append(problems, fmt.Sprintf("CORS_ALLOWED_ORIGINS %q is invalid: %v", strings.Join(cfg.CORSAllowedOrigins, ","), err))
	}

	if len(problems) == 0 {
		return nil
	}

	return &apperror.Error{
		Kind:    apperror.KindConfiguration,
		Message: fmt.Sprintf("configuration validation failed:\n%s", strings.Join(problems, "\n")),
		Context: map[string]any{"fields": fields},
	}
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}

func describe(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required (or %s_FILE, or a %s secret)", name, name, strings.ToLower(name))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 1 and 100, got %v", name, fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", name, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
