package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-discovery/backend/internal/apperror"
	"github.com/pageza/recipe-discovery/backend/internal/middleware"
	"github.com/pageza/recipe-discovery/backend/internal/service"
)

// PromptRequest is the body of the prompt-driven endpoints
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// LLMHandler handles prompt-driven recipe search and generation
type LLMHandler struct {
	extractor service.IFilterExtractor
	generator service.IRecipeGenerator
	upstream  service.IUpstreamClient
}

// NewLLMHandler creates a new LLMHandler instance
func NewLLMHandler(extractor service.IFilterExtractor, generator service.IRecipeGenerator, upstream service.IUpstreamClient) *LLMHandler {
	return &LLMHandler{
		extractor: extractor,
		generator: generator,
		upstream:  upstream,
	}
}

// RegisterRoutes registers the LLM routes
func (h *LLMHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/recipes/from-text", h.FromText)
	router.POST("/recipes/generate", h.Generate)
}

// FromText extracts search filters from the prompt and relays the
// provider's search results
func (h *LLMHandler) FromText(c *gin.Context) {
	req, ok := bindPrompt(c)
	if !ok {
		return
	}

	filter, err := h.extractor.Extract(c.Request.Context(), req.Prompt)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	raw, err := h.upstream.Search(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	writeRaw(c, raw)
}

// Generate returns a new recipe written by the language model
func (h *LLMHandler) Generate(c *gin.Context) {
	req, ok := bindPrompt(c)
	if !ok {
		return
	}

	recipe, err := h.generator.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func bindPrompt(c *gin.Context) (PromptRequest, bool) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.Validationf("body must be a JSON object with a prompt string: %v", err))
		return req, false
	}
	return req, true
}
