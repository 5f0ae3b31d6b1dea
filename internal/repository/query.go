package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sanchezegido/recipedia/internal/search"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// filterScope ANDs every present criterion onto the query
func filterScope(c search.Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.Name != "" {
			db = db.Where(`LOWER(recipes.name) LIKE ? ESCAPE '\'`, containsPattern(c.Name))
		}
		if c.Description != "" {
			db = db.Where(`LOWER(recipes.description) LIKE ? ESCAPE '\'`, containsPattern(c.Description))
		}
		if c.Difficulty != "" {
			db = db.Where("recipes.difficulty = ?", c.Difficulty)
		}
		if c.UserID != uuid.Nil {
			db = db.Where("recipes.user_id = ?", c.UserID)
		}
		if c.Kitchen != "" {
			db = db.Where("LOWER(recipes.kitchen) = ?", strings.ToLower(c.Kitchen))
		}
		db = rangeScope(db, "recipes.rations", c.Rations)
		db = rangeScope(db, "recipes.time", c.Time)
		if c.Type != "" {
			db = db.Where("recipes.type = ?", c.Type)
		}
		if c.Ingredient != "" {
			db = db.Where(
				"EXISTS (SELECT 1 FROM ingredients WHERE ingredients.recipe_id = recipes.id AND LOWER(ingredients.name) = ?)",
				strings.ToLower(c.Ingredient))
		}
		if c.Tag != "" {
			db = db.Where(
				"EXISTS (SELECT 1 FROM tags WHERE tags.recipe_id = recipes.id AND LOWER(tags.name) = ?)",
				strings.ToLower(c.Tag))
		}
		return db
	}
}

func rangeScope(db *gorm.DB, column string, r *search.Range) *gorm.DB {
	if r == nil {
		return db
	}
	if r.Min != nil {
		db = db.Where(column+" >= ?", *r.Min)
	}
	if r.Max != nil {
		db = db.Where(column+" <= ?", *r.Max)
	}
	return db
}

// orderScope applies the requested sort, falling back to name, with id as tie breaker
func orderScope(c search.Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sorts := c.Sort
		if len(sorts) == 0 {
			sorts = []search.Sort{{Column: "name"}}
		}
		for _, s := range sorts {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: "recipes", Name: s.Column},
				Desc:   s.Desc,
			})
		}
		return db.Order(clause.OrderByColumn{Column: clause.Column{Table: "recipes", Name: "id"}})
	}
}

// pageScope limits the query to the requested page
func pageScope(c search.Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(c.Offset()).Limit(search.PageSize)
	}
}
