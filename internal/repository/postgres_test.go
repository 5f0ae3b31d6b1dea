package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/testhelpers"
)

// Runs the unique index and search paths against PostgreSQL through lib/pq
func TestPostgresRepository(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()
	recipes := repository.NewRecipeRepository(db)
	reviews := repository.NewReviewRepository(db)

	owner := testhelpers.CreateUser(t, db, "chef")
	recipe := testhelpers.CreateRecipe(t, db, owner, models.Recipe{
		Name:        "Tortilla",
		Rations:     4,
		Ingredients: models.NewIngredients([]string{"egg", "potato"}),
	})

	dup := &models.Recipe{Name: "Tortilla", Difficulty: models.DifficultyEasy, Type: models.TypeMainCourse, Rations: 1, Time: 1, UserID: owner.ID}
	assert.ErrorIs(t, recipes.Create(ctx, dup), repository.ErrDuplicate)
	assert.ErrorIs(t, recipes.AddIngredient(ctx, recipe.ID, "egg"), repository.ErrDuplicate)

	require.NoError(t, reviews.Create(ctx, &models.Review{Comment: "ok", Rating: 3, UserID: owner.ID, RecipeID: recipe.ID}))
	assert.ErrorIs(t, reviews.Create(ctx, &models.Review{Comment: "ok", Rating: 3, UserID: owner.ID, RecipeID: recipe.ID}), repository.ErrDuplicate)

	c, err := search.Parse(search.Params{Rations: "3:5", Ingredient: "POTATO", SortBy: "time:desc"})
	require.NoError(t, err)
	page, err := recipes.FindBy(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Tortilla", page.Recipes[0].Name)
}
