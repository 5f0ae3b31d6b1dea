package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/config"
	"github.com/sanchezegido/recipedia/internal/database"
	"github.com/sanchezegido/recipedia/internal/logging"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/service"
	"github.com/sanchezegido/recipedia/internal/types"
)

// Fixed ids keep the printed tokens valid across reseeds
var testUsers = []models.User{
	{ID: uuid.MustParse("7f1c2a4e-5b8d-4e2f-9a61-0c3d8e7b1a01"), Username: "johndoe"},
	{ID: uuid.MustParse("7f1c2a4e-5b8d-4e2f-9a61-0c3d8e7b1a02"), Username: "janesmith"},
	{ID: uuid.MustParse("7f1c2a4e-5b8d-4e2f-9a61-0c3d8e7b1a03"), Username: "mariagarcia"},
}

var sampleRecipes = []types.RecipeRequest{
	{
		Name:        "Spaghetti Carbonara",
		Description: "Roman pasta with eggs, cheese and guanciale",
		Steps:       "Boil the pasta. Crisp the guanciale. Toss off the heat with eggs and pecorino.",
		Difficulty:  string(models.DifficultyMedium),
		Kitchen:     "Italian",
		Rations:     4,
		Time:        25,
		Type:        string(models.TypeMainCourse),
		Ingredients: []string{"spaghetti", "eggs", "pecorino", "guanciale", "black pepper"},
		Tags:        []string{"pasta", "quick"},
	},
	{
		Name:        "Gazpacho",
		Description: "Cold tomato soup",
		Steps:       "Blend everything, season and chill for two hours.",
		Difficulty:  string(models.DifficultyEasy),
		Kitchen:     "Spanish",
		Rations:     6,
		Time:        15,
		Type:        string(models.TypeStarter),
		Ingredients: []string{"tomatoes", "cucumber", "green pepper", "garlic", "olive oil"},
		Tags:        []string{"vegan", "summer"},
	},
	{
		Name:        "Crema Catalana",
		Description: "Custard with a burnt sugar crust",
		Steps:       "Infuse the milk. Thicken with yolks and starch. Chill, then caramelise the top.",
		Difficulty:  string(models.DifficultyHard),
		Kitchen:     "Catalan",
		Rations:     4,
		Time:        60,
		Type:        string(models.TypeDessert),
		Ingredients: []string{"milk", "egg yolks", "sugar", "lemon peel", "cinnamon"},
		Tags:        []string{"vegetarian"},
	},
	{
		Name:        "Horchata",
		Description: "Tiger nut milk",
		Steps:       "Soak the tiger nuts overnight, blend with water and sugar, strain.",
		Difficulty:  string(models.DifficultyEasy),
		Kitchen:     "Valencian",
		Rations:     8,
		Time:        20,
		Type:        string(models.TypeDrink),
		Ingredients: []string{"tiger nuts", "water", "sugar"},
		Tags:        []string{"vegan", "summer"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, 0)
	recipes := service.NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewReviewRepository(db),
		nil,
		service.WithLogger(logger),
	)

	for i := range testUsers {
		if err := users.Ensure(ctx, &testUsers[i]); err != nil {
			logger.Fatal("failed to create user", zap.String("username", testUsers[i].Username), zap.Error(err))
		}
	}

	created := 0
	for i, req := range sampleRecipes {
		owner := &testUsers[i%len(testUsers)]
		_, err := recipes.CreateRecipe(ctx, owner, &req)
		if service.KindOf(err) == service.KindConflict {
			logger.Info("recipe already seeded", zap.String("name", req.Name))
			continue
		}
		if err != nil {
			var serr *service.Error
			if errors.As(err, &serr) && serr.Fields != nil {
				logger.Fatal("invalid sample recipe", zap.String("name", req.Name), zap.Any("fields", serr.Fields))
			}
			logger.Fatal("failed to create recipe", zap.String("name", req.Name), zap.Error(err))
		}
		created++
	}
	logger.Info("seeded recipes", zap.Int("created", created), zap.Int("total", len(sampleRecipes)))

	fmt.Println("\nDevelopment tokens:")
	for i := range testUsers {
		token, err := tokens.GenerateToken(&testUsers[i])
		if err != nil {
			logger.Fatal("failed to sign token", zap.Error(err))
		}
		fmt.Printf("  %-12s %s\n", testUsers[i].Username, token)
	}
}
