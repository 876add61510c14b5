package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/middleware"
	"github.com/pageza/recipe-discovery/backend/internal/mocks"
	"github.com/pageza/recipe-discovery/backend/internal/model"
)

type llmMocks struct {
	extractor *mocks.MockFilterExtractor
	generator *mocks.MockRecipeGenerator
	upstream  *mocks.MockUpstreamClient
}

func setupLLMRouter() (*gin.Engine, llmMocks) {
	m := llmMocks{
		extractor: new(mocks.MockFilterExtractor),
		generator: new(mocks.MockRecipeGenerator),
		upstream:  new(mocks.MockUpstreamClient),
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	NewLLMHandler(m.extractor, m.generator, m.upstream).RegisterRoutes(r)
	return r, m
}

func TestFromText(t *testing.T) {
	t.Run("extracted filter is searched upstream", func(t *testing.T) {
		r, m := setupLLMRouter()
		cuisine := "italian"
		filter := model.ExtractedFilter{Cuisine: &cuisine, Ingredients: []string{"tomato"}}
		m.extractor.On("Extract", mock.Anything, "italian with tomato").Return(filter, nil)
		m.upstream.On("Search", mock.Anything, filter).Return(json.RawMessage(`{"results":[{"id":1}]}`), nil)

		w := serve(r, http.MethodPost, "/recipes/from-text", []byte(`{"prompt":"italian with tomato"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"results":[{"id":1}]}`, w.Body.String())
		m.extractor.AssertExpectations(t)
		m.upstream.AssertExpectations(t)
	})

	t.Run("extraction failure is surfaced and search skipped", func(t *testing.T) {
		r, m := setupLLMRouter()
		m.extractor.On("Extract", mock.Anything, "pasta").
			Return(model.ExtractedFilter{}, apperror.FilterExtraction("model output is not a JSON object", "I like pasta", nil))

		w := serve(r, http.MethodPost, "/recipes/from-text", []byte(`{"prompt":"pasta"}`))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		body := decodeErrorBody(t, w)
		assert.Equal(t, apperror.KindFilterExtraction, body.Kind)
		assert.Equal(t, "I like pasta", body.Details["raw"])
		m.upstream.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("empty prompt is a validation error", func(t *testing.T) {
		r, m := setupLLMRouter()
		m.extractor.On("Extract", mock.Anything, "").
			Return(model.ExtractedFilter{}, apperror.Validation("prompt must not be empty"))

		w := serve(r, http.MethodPost, "/recipes/from-text", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		r, m := setupLLMRouter()

		w := serve(r, http.MethodPost, "/recipes/from-text", []byte(`{"prompt":42}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.KindValidation, decodeErrorBody(t, w).Kind)
		m.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("provider error status is relayed", func(t *testing.T) {
		r, m := setupLLMRouter()
		m.extractor.On("Extract", mock.Anything, "soup").Return(model.ExtractedFilter{}, nil)
		m.upstream.On("Search", mock.Anything, model.ExtractedFilter{}).
			Return(nil, apperror.Upstream(http.StatusPaymentRequired, `{"message":"quota"}`))

		w := serve(r, http.MethodPost, "/recipes/from-text", []byte(`{"prompt":"soup"}`))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, apperror.KindUpstream, decodeErrorBody(t, w).Kind)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("returns the generated recipe", func(t *testing.T) {
		r, m := setupLLMRouter()
		m.generator.On("Generate", mock.Anything, "light lunch").Return(&model.GeneratedRecipe{
			Title:        "X",
			MealTime:     "Lunch",
			Ingredients:  []string{"a"},
			Instructions: []string{"b"},
		}, nil)

		w := serve(r, http.MethodPost, "/recipes/generate", []byte(`{"prompt":"light lunch"}`))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"title":"X","mealTime":"Lunch","ingredients":["a"],"instructions":["b"]}`, w.Body.String())
	})

	t.Run("generation failure carries raw text", func(t *testing.T) {
		r, m := setupLLMRouter()
		m.generator.On("Generate", mock.Anything, "cake").
			Return(nil, apperror.Generation("model output is not a recipe object", "no", nil))

		w := serve(r, http.MethodPost, "/recipes/generate", []byte(`{"prompt":"cake"}`))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		body := decodeErrorBody(t, w)
		assert.Equal(t, apperror.KindGeneration, body.Kind)
		assert.Equal(t, "no", body.Details["raw"])
	})
}
