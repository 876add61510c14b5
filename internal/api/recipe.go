package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/middleware"
	"github.com/pageza/recipe-discovery/backend/internal/model"
	"github.com/pageza/recipe-discovery/backend/internal/service"
	"github.com/pageza/recipe-discovery/backend/internal/store"
)

// Browse sources for GET /recipes without a region
const (
	BrowseLocal    = "local"
	BrowseUpstream = "upstream"
)

// RecipeHandler serves the local recipe list and recipe provider lookups
type RecipeHandler struct {
	store        *store.Store
	upstream     service.IUpstreamClient
	browseSource string
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(s *store.Store, upstream service.IUpstreamClient, browseSource string) *RecipeHandler {
	if browseSource == "" {
		browseSource = BrowseLocal
	}
	return &RecipeHandler{
		store:        s,
		upstream:     upstream,
		browseSource: browseSource,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/recipes", h.ListRecipes)
	router.GET("/recipes/:id", h.GetRecipe)
	router.POST("/recipes/by-ingredients", h.ByIngredients)
}

// ListRecipes filters the local list by region. Without a region it
// returns the whole list, or random provider recipes when browsing upstream.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	region := c.Query("region")
	if region == "" && h.browseSource == BrowseUpstream {
		raw, err := h.upstream.Random(c.Request.Context())
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		writeRaw(c, raw)
		return
	}

	c.JSON(http.StatusOK, service.FilterByRegion(h.store.All(), region))
}

// GetRecipe relays the provider's detail record for one recipe
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		middleware.AbortWithError(c, apperror.Validationf("recipe id must be a positive integer, got %q", c.Param("id")))
		return
	}

	raw, err := h.upstream.Recipe(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	writeRaw(c, raw)
}

// ByIngredients returns local recipes containing every posted ingredient.
// With ?source=upstream the ingredients become a provider search instead.
func (h *RecipeHandler) ByIngredients(c *gin.Context) {
	var ingredients []string
	if err := c.ShouldBindJSON(&ingredients); err != nil {
		middleware.AbortWithError(c, apperror.Validationf("body must be a JSON array of strings: %v", err))
		return
	}

	switch c.DefaultQuery("source", BrowseLocal) {
	case BrowseLocal:
		q := model.IngredientQuery{RequiredIngredients: ingredients}
		c.JSON(http.StatusOK, service.FilterByIngredients(h.store.All(), q))
	case BrowseUpstream:
		raw, err := h.upstream.Search(c.Request.Context(), service.FilterFromIngredients(ingredients))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		writeRaw(c, raw)
	default:
		middleware.AbortWithError(c, apperror.Validationf("source must be %q or %q", BrowseLocal, BrowseUpstream))
	}
}

// writeRaw relays provider JSON byte for byte
func writeRaw(c *gin.Context, raw json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
