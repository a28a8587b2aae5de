package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resiplicity/backend/internal/service"
	"github.com/resiplicity/backend/internal/types"
)

// LLMHandler drives the recipe generation pipeline: prompt, model call,
// parse, validate, persist.
type LLMHandler struct {
	llm     *service.LLMService
	recipes *service.RecipeService
}

// NewLLMHandler creates a new LLMHandler instance
func NewLLMHandler(llm *service.LLMService, recipes *service.RecipeService) *LLMHandler {
	return &LLMHandler{llm: llm, recipes: recipes}
}

// Generate handles POST /llm/generate. A recipe either comes back fully
// validated and saved, or the client gets an error; partially valid model
// output is never persisted.
func (h *LLMHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	raw, err := h.llm.GenerateRecipe(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[LLM] generation failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation failed"})
		return
	}

	data, err := service.ExtractRecipeJSON(raw)
	if err != nil {
		log.Printf("[LLM] unparseable model output for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	recipe, err := service.ValidateRecipe(data)
	if err != nil {
		log.Printf("[LLM] model output failed validation for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	row, err := h.recipes.SaveGenerated(c.Request.Context(), userID, req, recipe)
	if err != nil {
		log.Printf("[LLM] failed to persist generated recipe for user %s: %v", userID, err)
		resp := gin.H{
			"recipe": recipe,
			"saved":  false,
			"notice": "Recipe generated but could not be saved. Please try saving again.",
		}
		// Keep the result as a draft so the user can recover it.
		draft := &service.RecipeDraft{UserID: userID.String(), Recipe: *recipe}
		if derr := h.llm.SaveDraft(c.Request.Context(), draft); derr != nil {
			log.Printf("[LLM] failed to save draft: %v", derr)
		} else {
			resp["draft_id"] = draft.ID
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe": recipe,
		"saved":  true,
		"id":     row.ID,
	})
}

// GetDraft handles GET /llm/drafts/:id. Drafts exist only for recipes that
// generated successfully but failed to save.
func (h *LLMHandler) GetDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	draft, err := h.llm.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft handles DELETE /llm/drafts/:id, discarding a recovered draft.
func (h *LLMHandler) DeleteDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	draft, err := h.llm.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	if err := h.llm.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete draft"})
		return
	}

	c.Status(http.StatusNoContent)
}
