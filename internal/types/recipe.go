package types

// GenerateRecipeRequest is the structured input for a recipe generation call.
// It is built once per request and never mutated afterwards.
type GenerateRecipeRequest struct {
	Ingredients   []string `json:"ingredients"`
	Cuisine       string   `json:"cuisine"`
	Restrictions  []string `json:"restrictions"`
	Proficiency   string   `json:"proficiency"`
	TimeAvailable string   `json:"time_available"`
}

// Nutrition holds the per-serving nutrition estimate of a generated recipe.
// The model reports these as free-form strings ("350 kcal", "12g"), so they
// are kept as strings rather than parsed numbers.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// GeneratedRecipe is the fully validated output of the generation pipeline.
// Instances are only ever produced by service.ValidateRecipe; a recipe either
// passes validation completely or is discarded.
type GeneratedRecipe struct {
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	PrepTime               string            `json:"prepTime"`
	CookTime               string            `json:"cookTime"`
	TotalTime              string            `json:"totalTime"`
	Difficulty             string            `json:"difficulty"`
	Ingredients            []string          `json:"ingredients"`
	AlternativeIngredients map[string]string `json:"alternativeIngredients"`
	Instructions           []string          `json:"instructions"`
	Nutrition              Nutrition         `json:"nutrition"`
	Plating                string            `json:"plating"`
	History                string            `json:"history"`
}
