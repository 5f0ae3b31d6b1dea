package types

import (
	"encoding/xml"
	"time"

	"github.com/sanchezegido/recipedia/internal/models"
)

// OwnerResponse identifies the author of a recipe or review
type OwnerResponse struct {
	ID       string `json:"id" xml:"id,attr"`
	Username string `json:"username" xml:"username,attr"`
}

// ReviewResponse is the public representation of a review
type ReviewResponse struct {
	ID        string        `json:"id" xml:"id,attr"`
	Comment   string        `json:"comment" xml:"comment"`
	Rating    float32       `json:"rating" xml:"rating"`
	Author    OwnerResponse `json:"author" xml:"author"`
	CreatedAt time.Time     `json:"created_at" xml:"created_at"`
}

// RecipeResponse is the public representation of a recipe
type RecipeResponse struct {
	XMLName     xml.Name         `json:"-" xml:"recipe"`
	ID          string           `json:"id" xml:"id,attr"`
	Name        string           `json:"name" xml:"name"`
	Description string           `json:"description" xml:"description"`
	Steps       string           `json:"steps" xml:"steps"`
	Difficulty  string           `json:"difficulty" xml:"difficulty"`
	Kitchen     string           `json:"kitchen" xml:"kitchen"`
	Rations     int              `json:"rations" xml:"rations"`
	Time        int              `json:"time" xml:"time"`
	Type        string           `json:"type" xml:"type"`
	Owner       OwnerResponse    `json:"owner" xml:"owner"`
	Ingredients []string         `json:"ingredients" xml:"ingredients>ingredient"`
	Tags        []string         `json:"tags" xml:"tags>tag"`
	Reviews     []ReviewResponse `json:"reviews" xml:"reviews>review"`
	CreatedAt   time.Time        `json:"created_at" xml:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" xml:"updated_at"`
}

// RecipePageResponse is one page of a recipe listing or search
type RecipePageResponse struct {
	XMLName xml.Name         `json:"-" xml:"recipes"`
	Page    int              `json:"page" xml:"page,attr"`
	Total   int64            `json:"total" xml:"total,attr"`
	Recipes []RecipeResponse `json:"recipes" xml:"recipe"`
}

// ErrorResponse carries a stable code and a localized message
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewRecipeResponse builds the public view of a preloaded recipe
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Steps:       r.Steps,
		Difficulty:  string(r.Difficulty),
		Kitchen:     r.Kitchen,
		Rations:     r.Rations,
		Time:        r.Time,
		Type:        string(r.Type),
		Owner:       OwnerResponse{ID: r.UserID.String(), Username: r.User.Username},
		Ingredients: r.IngredientNames(),
		Tags:        r.TagNames(),
		Reviews:     make([]ReviewResponse, 0, len(r.Reviews)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, rv := range r.Reviews {
		resp.Reviews = append(resp.Reviews, ReviewResponse{
			ID:        rv.ID.String(),
			Comment:   rv.Comment,
			Rating:    rv.Rating,
			Author:    OwnerResponse{ID: rv.UserID.String(), Username: rv.User.Username},
			CreatedAt: rv.CreatedAt,
		})
	}
	return resp
}

// NewRecipePageResponse builds the public view of a page of recipes
func NewRecipePageResponse(page int, total int64, recipes []models.Recipe) RecipePageResponse {
	resp := RecipePageResponse{
		Page:    page,
		Total:   total,
		Recipes: make([]RecipeResponse, 0, len(recipes)),
	}
	for i := range recipes {
		resp.Recipes = append(resp.Recipes, NewRecipeResponse(&recipes[i]))
	}
	return resp
}
