package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resiplicity/backend/internal/model"
)

const validRecipeJSON = `{
	"title": "Pad Thai",
	"description": "Classic stir-fried noodles",
	"prepTime": "15 minutes",
	"cookTime": "10 minutes",
	"totalTime": "25 minutes",
	"difficulty": "Medium",
	"ingredients": ["200g rice noodles", "2 eggs", "100g tofu"],
	"alternativeIngredients": {"tofu": "chicken"},
	"instructions": ["Soak the noodles", "Stir-fry everything"],
	"nutrition": {"calories": "450", "protein": "20g", "carbs": "60g", "fat": "14g"},
	"plating": "Serve on a warm plate with lime wedges",
	"history": "A street food staple of Thailand"
}`

func generateBody() map[string]interface{} {
	return map[string]interface{}{
		"ingredients":    []string{"rice noodles", "eggs", "tofu"},
		"cuisine":        "Thai",
		"restrictions":   []string{},
		"proficiency":    "Intermediate",
		"time_available": "30 minutes",
	}
}

func TestGenerate_Success(t *testing.T) {
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion("```json\n" + validRecipeJSON + "\n```")))
	}))
	defer modelServer.Close()

	router, db := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, generateBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"saved":true`)
	assert.Contains(t, w.Body.String(), "Pad Thai")

	var count int64
	require.NoError(t, db.Model(&model.GeneratedRecipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerate_SaveFailureStillReturnsRecipe(t *testing.T) {
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion(validRecipeJSON)))
	}))
	defer modelServer.Close()

	router, db := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	// Break the save target; generation must still hand the recipe back.
	require.NoError(t, db.Exec("DROP TABLE generated_recipes").Error)

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, generateBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"saved":false`)
	assert.Contains(t, w.Body.String(), "could not be saved")
	assert.Contains(t, w.Body.String(), "Pad Thai")
}

func TestGenerate_RefusalIsNotPersisted(t *testing.T) {
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion("Sorry, I can't help with that.")))
	}))
	defer modelServer.Close()

	router, db := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, generateBody())
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to parse recipe data. Please try again.")

	var count int64
	require.NoError(t, db.Model(&model.GeneratedRecipe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGenerate_InvalidSchemaIsNotPersisted(t *testing.T) {
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion(`{"title": "Pad Thai"}`)))
	}))
	defer modelServer.Close()

	router, db := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, generateBody())
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid recipe data")

	var count int64
	require.NoError(t, db.Model(&model.GeneratedRecipe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGenerate_EmptyIngredientsSkipsModelCall(t *testing.T) {
	calls := 0
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(chatCompletion(validRecipeJSON)))
	}))
	defer modelServer.Close()

	router, _ := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	body := generateBody()
	body["ingredients"] = []string{}

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, calls)
}

func TestGenerate_RequiresAuth(t *testing.T) {
	router, _ := setupRouter(t, "http://unused.local")

	w := doJSON(router, "POST", "/api/v1/llm/generate", "", generateBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	modelServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer modelServer.Close()

	router, _ := setupRouter(t, modelServer.URL)
	token := registerUser(t, router)

	w := doJSON(router, "POST", "/api/v1/llm/generate", token, generateBody())
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
