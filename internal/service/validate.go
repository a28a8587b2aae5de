package service

import (
	"fmt"
	"strconv"

	"github.com/resiplicity/backend/internal/types"
)

var requiredRecipeFields = []string{
	"title",
	"description",
	"prepTime",
	"cookTime",
	"totalTime",
	"difficulty",
	"ingredients",
	"instructions",
	"nutrition",
	"plating",
	"history",
}

var requiredNutritionFields = []string{"calories", "protein", "carbs", "fat"}

// ValidateRecipe checks a decoded model response against the recipe schema
// and coerces it into a typed GeneratedRecipe. It returns either a fully
// populated recipe or a *ValidationError naming every offending field; no
// partial result is ever exposed. The function is pure, so it behaves
// identically on live responses and test fixtures.
func ValidateRecipe(data map[string]interface{}) (*types.GeneratedRecipe, error) {
	verr := &ValidationError{}

	for _, field := range requiredRecipeFields {
		if !truthy(data[field]) {
			verr.Missing = append(verr.Missing, field)
		}
	}

	ingredients, ok := data["ingredients"].([]interface{})
	if truthy(data["ingredients"]) && !ok {
		verr.Invalid = append(verr.Invalid, "ingredients must be an array")
	}

	instructions, ok := data["instructions"].([]interface{})
	if truthy(data["instructions"]) && !ok {
		verr.Invalid = append(verr.Invalid, "instructions must be an array")
	}

	nutrition, isObject := data["nutrition"].(map[string]interface{})
	if truthy(data["nutrition"]) && !isObject {
		verr.Invalid = append(verr.Invalid, "nutrition must be an object")
	}
	if isObject {
		for _, field := range requiredNutritionFields {
			if !truthy(nutrition[field]) {
				verr.Missing = append(verr.Missing, "nutrition."+field)
			}
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return nil, verr
	}

	return &types.GeneratedRecipe{
		Title:                  coerceString(data["title"]),
		Description:            coerceString(data["description"]),
		PrepTime:               coerceString(data["prepTime"]),
		CookTime:               coerceString(data["cookTime"]),
		TotalTime:              coerceString(data["totalTime"]),
		Difficulty:             coerceString(data["difficulty"]),
		Ingredients:            coerceStrings(ingredients),
		AlternativeIngredients: coerceStringMap(data["alternativeIngredients"]),
		Instructions:           coerceStrings(instructions),
		Nutrition: types.Nutrition{
			Calories: coerceString(nutrition["calories"]),
			Protein:  coerceString(nutrition["protein"]),
			Carbs:    coerceString(nutrition["carbs"]),
			Fat:      coerceString(nutrition["fat"]),
		},
		Plating: coerceString(data["plating"]),
		History: coerceString(data["history"]),
	}, nil
}

// truthy mirrors the presence rules the frontend originally enforced: nil,
// empty strings, empty containers, zero numbers and false all count as
// missing.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// coerceString renders a scalar JSON value in its canonical string form.
func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceStrings(values []interface{}) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, coerceString(v))
	}
	return result
}

// coerceStringMap converts the optional alternativeIngredients mapping; a
// missing or malformed value yields an empty map rather than an error.
func coerceStringMap(v interface{}) map[string]string {
	result := make(map[string]string)
	raw, ok := v.(map[string]interface{})
	if !ok {
		return result
	}
	for key, val := range raw {
		result[key] = coerceString(val)
	}
	return result
}
