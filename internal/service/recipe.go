package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/resiplicity/backend/internal/model"
	"github.com/resiplicity/backend/internal/types"
)

// RecipeService handles community recipe storage and the persistence step of
// the generation pipeline.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes lists community recipes, optionally ordered by embedding
// distance to the search query on postgres with a LIKE fallback elsewhere.
func (s *RecipeService) ListRecipes(ctx context.Context, search string) ([]model.Recipe, error) {
	var recipes []model.Recipe

	query := s.db.WithContext(ctx)
	if search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, &PersistenceError{Op: "failed to list recipes", Err: err}
	}
	return recipes, nil
}

// GetRecipe retrieves a community recipe by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, &PersistenceError{Op: "failed to read recipe", Err: err}
	}
	return &recipe, nil
}

// CreateRecipe inserts a direct community submission. New recipes start with
// the default trust score of 50 and zero votes.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	if recipe.TrustScore == 0 {
		recipe.TrustScore = 50
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return &PersistenceError{Op: "failed to create recipe", Err: err}
	}
	return nil
}

// SaveGenerated writes a validated generation result into the caller's saved
// collection, together with the request parameters it was generated from.
func (s *RecipeService) SaveGenerated(ctx context.Context, userID uuid.UUID, req types.GenerateRecipeRequest, recipe *types.GeneratedRecipe) (*model.GeneratedRecipe, error) {
	row := &model.GeneratedRecipe{
		UserID:                 userID,
		Title:                  recipe.Title,
		Description:            recipe.Description,
		PrepTime:               recipe.PrepTime,
		CookTime:               recipe.CookTime,
		TotalTime:              recipe.TotalTime,
		Difficulty:             recipe.Difficulty,
		Ingredients:            model.JSONBStringArray(recipe.Ingredients),
		Instructions:           model.JSONBStringArray(recipe.Instructions),
		AlternativeIngredients: model.JSONBStringMap(recipe.AlternativeIngredients),
		Nutrition: model.JSONBStringMap{
			"calories": recipe.Nutrition.Calories,
			"protein":  recipe.Nutrition.Protein,
			"carbs":    recipe.Nutrition.Carbs,
			"fat":      recipe.Nutrition.Fat,
		},
		Plating:             recipe.Plating,
		History:             recipe.History,
		CuisineType:         req.Cuisine,
		DietaryRestrictions: model.JSONBStringArray(req.Restrictions),
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, &PersistenceError{Op: "failed to save generated recipe", Err: err}
	}
	return row, nil
}

// ListSaved returns the caller's saved generated recipes, newest first.
func (s *RecipeService) ListSaved(ctx context.Context, userID uuid.UUID) ([]model.GeneratedRecipe, error) {
	var rows []model.GeneratedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "failed to list saved recipes", Err: err}
	}
	return rows, nil
}
