package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/database"
	"github.com/resiplicity/backend/internal/model"
	"github.com/resiplicity/backend/internal/models"
	"github.com/resiplicity/backend/internal/service"
)

// Seeds a handful of community recipes so a fresh deployment has something to
// browse and vote on. Safe to re-run; existing titles are skipped.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Seed] failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Seed] failed to connect to database: %v", err)
	}

	seedUser, err := ensureSeedUser(db)
	if err != nil {
		log.Fatalf("[Seed] failed to ensure seed user: %v", err)
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	seeded := 0
	for _, r := range seedRecipes {
		var count int64
		if err := db.Model(&model.Recipe{}).Where("title = ?", r.Title).Count(&count).Error; err != nil {
			log.Fatalf("[Seed] failed to check for %q: %v", r.Title, err)
		}
		if count > 0 {
			continue
		}

		r.Author = seedUser.Username
		r.UserID = seedUser.ID
		if err := recipes.CreateRecipe(ctx, &r); err != nil {
			log.Fatalf("[Seed] failed to create %q: %v", r.Title, err)
		}
		seeded++
	}

	log.Printf("[Seed] done, %d recipes created", seeded)
}

// ensureSeedUser finds or creates the account that owns the seed recipes.
func ensureSeedUser(db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", "resiplicity").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Name:         "Resiplicity",
		Username:     "resiplicity",
		Email:        "seed@resiplicity.local",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

var seedRecipes = []model.Recipe{
	{
		Title:       "Coq au Vin",
		Description: "Chicken braised slowly in red wine with mushrooms and pearl onions.",
		Ingredients: model.JSONBStringArray{
			"1 whole chicken, cut into pieces",
			"750ml red wine",
			"200g bacon lardons",
			"250g button mushrooms",
			"12 pearl onions",
			"2 cloves garlic",
		},
		Instructions: model.JSONBStringArray{
			"Brown the bacon and set aside.",
			"Brown the chicken pieces in the bacon fat.",
			"Add wine, garlic and onions; simmer covered for 45 minutes.",
			"Add mushrooms and bacon; simmer 15 minutes more.",
		},
		DietaryTags: model.JSONBStringArray{},
	},
	{
		Title:       "Chana Masala",
		Description: "Chickpeas simmered in a spiced tomato and onion gravy.",
		Ingredients: model.JSONBStringArray{
			"2 cans chickpeas",
			"1 large onion, diced",
			"3 tomatoes, chopped",
			"2 tsp garam masala",
			"1 tsp cumin seeds",
			"1 tbsp ginger-garlic paste",
		},
		Instructions: model.JSONBStringArray{
			"Fry cumin seeds, then soften the onion.",
			"Add ginger-garlic paste and tomatoes; cook down to a gravy.",
			"Stir in spices and chickpeas; simmer 20 minutes.",
		},
		DietaryTags: model.JSONBStringArray{"vegetarian", "vegan", "gluten-free"},
	},
	{
		Title:       "Miso-Glazed Salmon",
		Description: "Salmon fillets broiled under a sweet-savory miso glaze.",
		Ingredients: model.JSONBStringArray{
			"4 salmon fillets",
			"3 tbsp white miso paste",
			"2 tbsp mirin",
			"1 tbsp soy sauce",
			"1 tbsp brown sugar",
		},
		Instructions: model.JSONBStringArray{
			"Whisk miso, mirin, soy sauce and sugar.",
			"Coat the fillets and marinate 30 minutes.",
			"Broil 8-10 minutes until the glaze caramelizes.",
		},
		DietaryTags: model.JSONBStringArray{"pescatarian", "dairy-free"},
	},
	{
		Title:       "Mushroom Risotto",
		Description: "Creamy arborio rice with porcini and parmesan.",
		Ingredients: model.JSONBStringArray{
			"300g arborio rice",
			"30g dried porcini",
			"1L vegetable stock",
			"1 shallot, minced",
			"60g parmesan",
			"125ml dry white wine",
		},
		Instructions: model.JSONBStringArray{
			"Soak the porcini and strain the liquid into the stock.",
			"Sweat the shallot, toast the rice, deglaze with wine.",
			"Add stock a ladle at a time, stirring, about 18 minutes.",
			"Finish with mushrooms and parmesan.",
		},
		DietaryTags: model.JSONBStringArray{"vegetarian", "gluten-free"},
	},
}
