package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resiplicity/backend/internal/model"
	"github.com/resiplicity/backend/internal/service"
	"github.com/resiplicity/backend/internal/types"
)

// RecipeHandler handles community recipe endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
	votes   *service.VoteService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, votes *service.VoteService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, votes: votes}
}

// List handles GET /recipes. An optional search query orders results by
// embedding distance.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

type createRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"image_url"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions []string `json:"instructions" binding:"required"`
	DietaryTags  []string `json:"dietary_tags"`
}

// Create handles POST /recipes, a direct community submission.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	username, _ := c.Get("username")
	author, _ := username.(string)

	recipe := &model.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Author:       author,
		ImageURL:     req.ImageURL,
		Ingredients:  model.JSONBStringArray(req.Ingredients),
		Instructions: model.JSONBStringArray(req.Instructions),
		DietaryTags:  model.JSONBStringArray(req.DietaryTags),
		UserID:       userID,
	}

	if err := h.recipes.CreateRecipe(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// Vote handles POST /recipes/:id/vote.
func (h *RecipeHandler) Vote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Vote != service.VoteUp && req.Vote != service.VoteDown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vote must be \"up\" or \"down\""})
		return
	}

	recipe, err := h.votes.ApplyVote(c.Request.Context(), id, req.Vote)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          recipe.ID,
		"votes":       recipe.Votes,
		"trust_score": recipe.TrustScore,
	})
}

// ListSaved handles GET /saved-recipes for the authenticated user.
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rows, err := h.recipes.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": rows})
}
