package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/internal/model"
	"github.com/resiplicity/backend/internal/service"
)

func seedRecipe(t *testing.T, db *gorm.DB, title string, trust int) *model.Recipe {
	recipe := &model.Recipe{
		Title:      title,
		TrustScore: trust,
		UserID:     uuid.New(),
		Embedding:  service.GenerateEmbedding(title),
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestListAndGetRecipes(t *testing.T) {
	router, db := setupRouter(t, "http://unused.local")
	recipe := seedRecipe(t, db, "Tomato Soup", 50)
	seedRecipe(t, db, "Beef Stew", 50)

	w := doJSON(router, "GET", "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.Contains(t, w.Body.String(), "Beef Stew")

	w = doJSON(router, "GET", "/api/v1/recipes?search=tomato", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.NotContains(t, w.Body.String(), "Beef Stew")

	w = doJSON(router, "GET", "/api/v1/recipes/"+recipe.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")

	w = doJSON(router, "GET", "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipe(t *testing.T) {
	router, db := setupRouter(t, "http://unused.local")
	token := registerUser(t, router)

	body := map[string]interface{}{
		"title":        "Shakshuka",
		"description":  "Eggs poached in spiced tomato sauce",
		"ingredients":  []string{"4 eggs", "1 can tomatoes", "1 onion"},
		"instructions": []string{"Simmer the sauce", "Crack in the eggs"},
		"dietary_tags": []string{"vegetarian"},
	}

	w := doJSON(router, "POST", "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored model.Recipe
	require.NoError(t, db.First(&stored, "title = ?", "Shakshuka").Error)
	assert.Equal(t, 50, stored.TrustScore)
	assert.Equal(t, "testuser", stored.Author)
	assert.Equal(t, model.JSONBStringArray{"vegetarian"}, stored.DietaryTags)

	// Unauthenticated create is rejected.
	w = doJSON(router, "POST", "/api/v1/recipes", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVoteEndpoint(t *testing.T) {
	router, db := setupRouter(t, "http://unused.local")
	token := registerUser(t, router)
	recipe := seedRecipe(t, db, "Ramen", 50)

	w := doJSON(router, "POST", "/api/v1/recipes/"+recipe.ID.String()+"/vote", token,
		map[string]string{"vote": "up"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"votes":1`)
	assert.Contains(t, w.Body.String(), `"trust_score":52`)

	w = doJSON(router, "POST", "/api/v1/recipes/"+recipe.ID.String()+"/vote", token,
		map[string]string{"vote": "down"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"votes":0`)
	assert.Contains(t, w.Body.String(), `"trust_score":50`)

	w = doJSON(router, "POST", "/api/v1/recipes/"+recipe.ID.String()+"/vote", token,
		map[string]string{"vote": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/v1/recipes/"+uuid.NewString()+"/vote", token,
		map[string]string{"vote": "up"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSaved(t *testing.T) {
	router, db := setupRouter(t, "http://unused.local")
	token := registerUser(t, router)

	w := doJSON(router, "GET", "/api/v1/saved-recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Rows belonging to another user stay invisible.
	require.NoError(t, db.Create(&model.GeneratedRecipe{
		UserID: uuid.New(),
		Title:  "Someone Else's Curry",
	}).Error)

	w = doJSON(router, "GET", "/api/v1/saved-recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Someone Else's Curry")
}
