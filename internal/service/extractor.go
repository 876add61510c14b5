package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/llm"
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

const extractFilterInstruction = `You convert a recipe search request into search filters.
Respond with a single JSON object and nothing else. Use only these keys:
  "ingredients": array of ingredient names the recipe must include
  "cuisine": a cuisine such as "italian" or "mexican"
  "diet": a diet such as "vegetarian", "vegan" or "gluten free"
  "maxReadyTime": maximum total preparation time in whole minutes
Leave out any key the request does not mention.`

var validate = validator.New()

// FilterExtractor turns a free-text prompt into search filters.
type FilterExtractor struct {
	llm llm.Provider
}

// NewFilterExtractor creates a new filter extractor
func NewFilterExtractor(provider llm.Provider) *FilterExtractor {
	return &FilterExtractor{llm: provider}
}

// Extract asks the model for filters matching prompt. The model is called
// exactly once; an empty prompt is rejected before any call.
func (e *FilterExtractor) Extract(ctx context.Context, prompt string) (model.ExtractedFilter, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return model.ExtractedFilter{}, apperror.Validation("prompt must not be empty")
	}

	text, err := complete(ctx, e.llm, "extract", extractFilterInstruction, prompt)
	if err != nil {
		return model.ExtractedFilter{}, apperror.FilterExtraction("language model request failed", "", err)
	}

	filter, err := ParseFilter(text)
	if err != nil {
		slog.Warn("filter extraction failed", "error", err, "raw", text)
		return model.ExtractedFilter{}, err
	}

	slog.Debug("filter extracted", "filter", filter)
	return filter, nil
}

// ParseFilter decodes model output into a filter. Keys that are missing,
// null or of the wrong type are treated as absent.
func ParseFilter(text string) (model.ExtractedFilter, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("model output is not a JSON object")
		}
		return model.ExtractedFilter{}, apperror.FilterExtraction("model output is not a JSON object", text, err)
	}

	filter := model.ExtractedFilter{
		Ingredients:         stringList(fields["ingredients"]),
		Cuisine:             optionalString(fields["cuisine"]),
		Diet:                optionalString(fields["diet"]),
		MaxReadyTimeMinutes: optionalInt(fields["maxReadyTime"]),
	}

	if err := validate.Struct(filter); err != nil {
		return model.ExtractedFilter{}, apperror.Validationf("maxReadyTime must not be negative, got %s", fields["maxReadyTime"])
	}
	return filter, nil
}

func optionalString(raw json.RawMessage) *string {
	var s *string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(raw json.RawMessage) *int {
	var f *float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil || f == nil {
		return nil
	}
	// Any negative stays negative so validation rejects it
	if *f < 0 {
		n := int(math.Max(math.Floor(*f), math.MinInt32))
		return &n
	}
	if *f != math.Trunc(*f) || *f > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

// stringList returns nil unless raw is an array made only of strings.
func stringList(raw json.RawMessage) []string {
	var items []any
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}

	var out []string
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
