package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty grades how demanding a recipe is to cook
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Difficulties lists every accepted difficulty
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulties
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// RecipeType is the course a recipe belongs to
type RecipeType string

const (
	TypeStarter    RecipeType = "STARTER"
	TypeMainCourse RecipeType = "MAIN_COURSE"
	TypeDessert    RecipeType = "DESSERT"
	TypeSideDish   RecipeType = "SIDE_DISH"
	TypeDrink      RecipeType = "DRINK"
)

// RecipeTypes lists every accepted recipe type
var RecipeTypes = []RecipeType{TypeStarter, TypeMainCourse, TypeDessert, TypeSideDish, TypeDrink}

// Valid reports whether t is one of the known recipe types
func (t RecipeType) Valid() bool {
	for _, known := range RecipeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Recipe is the aggregate root owned by a single user. Ingredients and tags
// live and die with it; reviews point back at it.
type Recipe struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Name        string       `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string       `gorm:"size:1000" json:"description"`
	Steps       string       `gorm:"type:text" json:"steps"`
	Difficulty  Difficulty   `gorm:"size:16;not null" json:"difficulty"`
	Kitchen     string       `gorm:"size:100" json:"kitchen"`
	Rations     int          `gorm:"not null" json:"rations"`
	Time        int          `gorm:"not null" json:"time"`
	Type        RecipeType   `gorm:"size:32;not null" json:"type"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User        User         `gorm:"foreignKey:UserID" json:"user"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Tags        []Tag        `gorm:"foreignKey:RecipeID" json:"tags"`
	Reviews     []Review     `gorm:"foreignKey:RecipeID" json:"reviews"`
}

// BeforeCreate assigns an id when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientNames returns the ingredient values in insertion order
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		names = append(names, i.Name)
	}
	return names
}

// TagNames returns the tag values in insertion order
func (r *Recipe) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}

// HasIngredient reports whether the recipe already lists name, ignoring case
func (r *Recipe) HasIngredient(name string) bool {
	for _, i := range r.Ingredients {
		if strings.EqualFold(i.Name, name) {
			return true
		}
	}
	return false
}

// HasTag reports whether the recipe is already tagged with name, ignoring case
func (r *Recipe) HasTag(name string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_recipe_ingredient" json:"name"`
}

type Tag struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tag" json:"-"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_recipe_tag" json:"name"`
}

// NewIngredients wraps plain names into ingredient rows, trimmed
func NewIngredients(names []string) []Ingredient {
	out := make([]Ingredient, 0, len(names))
	for _, n := range names {
		out = append(out, Ingredient{Name: strings.TrimSpace(n)})
	}
	return out
}

// NewTags wraps plain names into tag rows, trimmed
func NewTags(names []string) []Tag {
	out := make([]Tag, 0, len(names))
	for _, n := range names {
		out = append(out, Tag{Name: strings.TrimSpace(n)})
	}
	return out
}
