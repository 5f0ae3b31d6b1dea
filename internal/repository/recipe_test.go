package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/testhelpers"
)

func names(p *repository.Page) []string {
	out := make([]string, 0, len(p.Recipes))
	for _, r := range p.Recipes {
		out = append(out, r.Name)
	}
	return out
}

func mustParse(t *testing.T, p search.Params) search.Criteria {
	t.Helper()
	c, err := search.Parse(p)
	require.NoError(t, err)
	return c
}

func seedSearchFixtures(t *testing.T, db *gorm.DB) (alice, bob *models.User) {
	t.Helper()
	alice = testhelpers.CreateUser(t, db, "alice")
	bob = testhelpers.CreateUser(t, db, "bob")

	testhelpers.CreateRecipe(t, db, alice, models.Recipe{
		Name: "Tomato Soup", Description: "Warm and red", Kitchen: "Spanish",
		Rations: 2, Time: 20, Difficulty: models.DifficultyEasy, Type: models.TypeStarter,
		Ingredients: models.NewIngredients([]string{"tomato", "salt"}),
		Tags:        models.NewTags([]string{"vegan"}),
	})
	testhelpers.CreateRecipe(t, db, alice, models.Recipe{
		Name: "Paella", Description: "Rice with seafood", Kitchen: "Spanish",
		Rations: 4, Time: 60, Difficulty: models.DifficultyHard, Type: models.TypeMainCourse,
		Ingredients: models.NewIngredients([]string{"rice", "salt", "prawns"}),
	})
	testhelpers.CreateRecipe(t, db, bob, models.Recipe{
		Name: "Brownies", Description: "Chocolate squares", Kitchen: "American",
		Rations: 8, Time: 45, Difficulty: models.DifficultyMedium, Type: models.TypeDessert,
		Ingredients: models.NewIngredients([]string{"chocolate", "flour"}),
		Tags:        models.NewTags([]string{"sweet", "baking"}),
	})
	testhelpers.CreateRecipe(t, db, bob, models.Recipe{
		Name: "Gazpacho", Description: "Cold tomato soup", Kitchen: "Spanish",
		Rations: 3, Time: 15, Difficulty: models.DifficultyEasy, Type: models.TypeStarter,
		Ingredients: models.NewIngredients([]string{"tomato", "cucumber"}),
		Tags:        models.NewTags([]string{"vegan", "summer"}),
	})
	return alice, bob
}

func TestFindBy(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	alice, _ := seedSearchFixtures(t, db)

	tests := []struct {
		name   string
		params search.Params
		want   []string
	}{
		{"unfiltered ordered by name", search.Params{}, []string{"Brownies", "Gazpacho", "Paella", "Tomato Soup"}},
		{"rations closed range", search.Params{Rations: "2:4"}, []string{"Gazpacho", "Paella", "Tomato Soup"}},
		{"rations upper bound", search.Params{Rations: ":3"}, []string{"Gazpacho", "Tomato Soup"}},
		{"rations lower bound", search.Params{Rations: "4:"}, []string{"Brownies", "Paella"}},
		{"time range", search.Params{Time: "15:20"}, []string{"Gazpacho", "Tomato Soup"}},
		{"name contains, case insensitive", search.Params{Name: "SOUP"}, []string{"Tomato Soup"}},
		{"description contains", search.Params{Description: "tomato"}, []string{"Gazpacho"}},
		{"difficulty", search.Params{Difficulty: "EASY"}, []string{"Gazpacho", "Tomato Soup"}},
		{"owner", search.Params{UserID: alice.ID.String()}, []string{"Paella", "Tomato Soup"}},
		{"kitchen", search.Params{Kitchen: "spanish"}, []string{"Gazpacho", "Paella", "Tomato Soup"}},
		{"type", search.Params{Type: "DESSERT"}, []string{"Brownies"}},
		{"ingredient", search.Params{Ingredient: "salt"}, []string{"Paella", "Tomato Soup"}},
		{"tag", search.Params{Tag: "vegan"}, []string{"Gazpacho", "Tomato Soup"}},
		{"filters are ANDed", search.Params{Tag: "vegan", Rations: "3:"}, []string{"Gazpacho"}},
		{"sort by time desc", search.Params{SortBy: "time:desc"}, []string{"Paella", "Brownies", "Tomato Soup", "Gazpacho"}},
		{"sort by kitchen then rations desc", search.Params{SortBy: "kitchen,rations:desc"}, []string{"Brownies", "Paella", "Gazpacho", "Tomato Soup"}},
		{"like wildcards are literal", search.Params{Name: "%"}, []string{}},
		{"no match", search.Params{Ingredient: "saffron"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.FindBy(ctx, mustParse(t, tt.params))
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(page))
			assert.Equal(t, int64(len(tt.want)), page.Total)
		})
	}
}

func TestFindByPaginates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")

	total := search.PageSize + 5
	for i := 0; i < total; i++ {
		testhelpers.CreateRecipe(t, db, owner, models.Recipe{Name: fmt.Sprintf("Recipe %02d", i)})
	}

	first, err := repo.FindAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, first.Recipes, search.PageSize)
	assert.Equal(t, int64(total), first.Total)
	assert.Equal(t, "Recipe 00", first.Recipes[0].Name)

	second, err := repo.FindAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, second.Recipes, 5)
	assert.Equal(t, int64(total), second.Total)
	assert.Equal(t, "Recipe 20", second.Recipes[0].Name)

	beyond, err := repo.FindAll(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, beyond.Recipes)
	assert.Equal(t, int64(total), beyond.Total)

	filtered, err := repo.FindBy(ctx, search.Criteria{Name: "recipe", Page: 1})
	require.NoError(t, err)
	assert.Len(t, filtered.Recipes, 5)
	assert.Equal(t, first.Total, filtered.Total)
}

func TestFindByIDPreloadsAssociations(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")
	critic := testhelpers.CreateUser(t, db, "critic")

	created := testhelpers.CreateRecipe(t, db, owner, models.Recipe{
		Name:        "Omelette",
		Ingredients: models.NewIngredients([]string{"eggs", "salt", "butter"}),
		Tags:        models.NewTags([]string{"breakfast"}),
	})
	require.NoError(t, repository.NewReviewRepository(db).Create(ctx, &models.Review{
		Comment: "fluffy", Rating: 4.5, UserID: critic.ID, RecipeID: created.ID,
	}))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", got.Name)
	assert.Equal(t, "chef", got.User.Username)
	assert.Equal(t, []string{"eggs", "salt", "butter"}, got.IngredientNames())
	assert.Equal(t, []string{"breakfast"}, got.TagNames())
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, "critic", got.Reviews[0].User.Username)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")

	first := &models.Recipe{Name: "X", Difficulty: models.DifficultyEasy, Type: models.TypeDrink, Rations: 1, Time: 5, UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Recipe{Name: "X", Difficulty: models.DifficultyEasy, Type: models.TypeDrink, Rations: 1, Time: 5, UserID: owner.ID}
	assert.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicate)

	exists, err := repo.ExistsByName(ctx, "X", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "X", first.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a recipe does not collide with itself")
}

func TestUpdateAndReplace(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")
	recipe := testhelpers.CreateRecipe(t, db, owner, models.Recipe{
		Name:        "Pancakes",
		Ingredients: models.NewIngredients([]string{"flour", "milk"}),
		Tags:        models.NewTags([]string{"breakfast"}),
	})

	recipe.Rations = 6
	recipe.Description = ""
	require.NoError(t, repo.Update(ctx, recipe))

	got, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Rations)
	assert.Equal(t, []string{"flour", "milk"}, got.IngredientNames(), "update keeps collections")

	got.Name = "Crepes"
	got.Ingredients = models.NewIngredients([]string{"flour", "eggs", "milk"})
	got.Tags = nil
	require.NoError(t, repo.Replace(ctx, got))

	got, err = repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", got.Name)
	assert.Equal(t, []string{"flour", "eggs", "milk"}, got.IngredientNames())
	assert.Empty(t, got.Tags)
}

func TestReplaceRollsBackOnDuplicateName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")
	testhelpers.CreateRecipe(t, db, owner, models.Recipe{Name: "Taken"})
	recipe := testhelpers.CreateRecipe(t, db, owner, models.Recipe{
		Name:        "Mine",
		Ingredients: models.NewIngredients([]string{"salt"}),
	})

	recipe.Name = "Taken"
	recipe.Ingredients = models.NewIngredients([]string{"pepper"})
	assert.ErrorIs(t, repo.Replace(ctx, recipe), repository.ErrDuplicate)

	got, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Name)
	assert.Equal(t, []string{"salt"}, got.IngredientNames())
}

func TestIngredientsAndTags(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")
	recipe := testhelpers.CreateRecipe(t, db, owner, models.Recipe{Name: "Stew"})

	require.NoError(t, repo.AddIngredient(ctx, recipe.ID, "salt"))
	assert.ErrorIs(t, repo.AddIngredient(ctx, recipe.ID, "salt"), repository.ErrDuplicate)
	require.NoError(t, repo.AddTag(ctx, recipe.ID, "winter"))
	assert.ErrorIs(t, repo.AddTag(ctx, recipe.ID, "winter"), repository.ErrDuplicate)

	got, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"salt"}, got.IngredientNames())
	assert.Equal(t, []string{"winter"}, got.TagNames())

	require.NoError(t, repo.RemoveIngredient(ctx, recipe.ID, "salt"))
	require.NoError(t, repo.RemoveIngredient(ctx, recipe.ID, "salt"), "removing twice is a no-op")
	require.NoError(t, repo.RemoveTag(ctx, recipe.ID, "winter"))
	require.NoError(t, repo.RemoveTag(ctx, recipe.ID, "missing"))

	got, err = repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ingredients)
	assert.Empty(t, got.Tags)
}

func TestDeleteRemovesChildren(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	owner := testhelpers.CreateUser(t, db, "chef")
	recipe := testhelpers.CreateRecipe(t, db, owner, models.Recipe{
		Name:        "Salad",
		Ingredients: models.NewIngredients([]string{"lettuce"}),
		Tags:        models.NewTags([]string{"fresh"}),
	})
	require.NoError(t, repository.NewReviewRepository(db).Create(ctx, &models.Review{
		Comment: "crisp", Rating: 3, UserID: owner.ID, RecipeID: recipe.ID,
	}))

	require.NoError(t, repo.Delete(ctx, recipe))

	_, err := repo.FindByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	for _, model := range []interface{}{&models.Ingredient{}, &models.Tag{}, &models.Review{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&n).Error)
		assert.Zero(t, n)
	}
}
