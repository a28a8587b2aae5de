package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedRecipe is the saved copy of a validated generation result, scoped
// to the user that requested it. The row also records the request parameters
// (cuisine, restrictions) the recipe was generated from.
type GeneratedRecipe struct {
	ID                     uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	UserID                 uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title                  string           `gorm:"size:255;not null" json:"title"`
	Description            string           `gorm:"type:text" json:"description"`
	PrepTime               string           `gorm:"size:100" json:"prep_time"`
	CookTime               string           `gorm:"size:100" json:"cook_time"`
	TotalTime              string           `gorm:"size:100" json:"total_time"`
	Difficulty             string           `gorm:"size:50" json:"difficulty"`
	Ingredients            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	AlternativeIngredients JSONBStringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"alternative_ingredients"`
	Nutrition              JSONBStringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"nutrition"`
	Plating                string           `gorm:"type:text" json:"plating"`
	History                string           `gorm:"type:text" json:"history"`
	CuisineType            string           `gorm:"size:100" json:"cuisine_type"`
	DietaryRestrictions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
}

// BeforeCreate assigns an id so inserts work on sqlite as well as postgres.
func (r *GeneratedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
