package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-discovery/backend/internal/api"
	"github.com/pageza/recipe-discovery/backend/internal/middleware"
	"github.com/pageza/recipe-discovery/backend/internal/mocks"
	"github.com/pageza/recipe-discovery/backend/internal/model"
	"github.com/pageza/recipe-discovery/backend/internal/store"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	recipes := store.New([]model.Recipe{{ID: 1, Title: "Tacos", Region: "Mexican"}})
	upstream := new(mocks.MockUpstreamClient)
	upstream.On("Recipe", mock.Anything, 5).Return(json.RawMessage(`{"id":5}`), nil)

	return SetupRouter(
		api.NewRecipeHandler(recipes, upstream, api.BrowseLocal),
		api.NewLLMHandler(new(mocks.MockFilterExtractor), new(mocks.MockRecipeGenerator), upstream),
		recipes,
		[]string{"http://localhost:5173"},
	)
}

func TestSetupRouterRoutes(t *testing.T) {
	r := setupTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/recipes", http.StatusOK},
		{http.MethodGet, "/recipes/5", http.StatusOK},
		{http.MethodGet, "/recipes/x", http.StatusBadRequest},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "recipes_http_requests_total"))
}
