// Package search turns the optional query parameters of a recipe search into
// validated criteria the repository can apply.
package search

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sanchezegido/recipedia/internal/models"
)

// PageSize is the number of recipes returned per page
const PageSize = 20

// MaxPage is the last page whose offset fits in an int
const MaxPage = math.MaxInt / PageSize

// Params holds the raw search parameters exactly as received
type Params struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Difficulty  string `form:"difficulty"`
	UserID      string `form:"userId"`
	Kitchen     string `form:"kitchen"`
	Rations     string `form:"rations"`
	Time        string `form:"time"`
	Type        string `form:"type"`
	Ingredient  string `form:"ingredient"`
	Tag         string `form:"tag"`
	SortBy      string `form:"sortBy"`
	Page        string `form:"page"`
}

// Range is an inclusive numeric interval; a nil bound is open
type Range struct {
	Min *int
	Max *int
}

// Sort orders results by one column
type Sort struct {
	Column string
	Desc   bool
}

// Criteria is the validated form of Params. Zero values impose no constraint.
type Criteria struct {
	Name        string
	Description string
	Difficulty  models.Difficulty
	UserID      uuid.UUID
	Kitchen     string
	Rations     *Range
	Time        *Range
	Type        models.RecipeType
	Ingredient  string
	Tag         string
	Sort        []Sort
	Page        int
}

// Unfiltered reports whether c selects every recipe in the default order
func (c Criteria) Unfiltered() bool {
	return c.Name == "" &&
		c.Description == "" &&
		c.Difficulty == "" &&
		c.UserID == uuid.Nil &&
		c.Kitchen == "" &&
		c.Rations == nil &&
		c.Time == nil &&
		c.Type == "" &&
		c.Ingredient == "" &&
		c.Tag == "" &&
		len(c.Sort) == 0
}

// Offset is the number of rows skipped before the requested page
func (c Criteria) Offset() int {
	return c.Page * PageSize
}

// sortColumns maps accepted sortBy fields to their columns
var sortColumns = map[string]string{
	"name":       "name",
	"difficulty": "difficulty",
	"kitchen":    "kitchen",
	"rations":    "rations",
	"time":       "time",
	"type":       "type",
	"created":    "created_at",
}

// SortFields lists the accepted sortBy field names
func SortFields() []string {
	fields := make([]string, 0, len(sortColumns))
	for f := range sortColumns {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError lists every rejected parameter with a reason
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid search parameters: " + strings.Join(parts, "; ")
}

// Parse validates p. Every malformed parameter is reported, none is dropped.
func Parse(p Params) (Criteria, error) {
	c := Criteria{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Kitchen:     strings.TrimSpace(p.Kitchen),
		Ingredient:  strings.TrimSpace(p.Ingredient),
		Tag:         strings.TrimSpace(p.Tag),
	}
	errs := map[string]string{}

	if v := strings.TrimSpace(p.Difficulty); v != "" {
		d := models.Difficulty(strings.ToUpper(v))
		if !d.Valid() {
			errs["difficulty"] = fmt.Sprintf("unknown difficulty %q", v)
		}
		c.Difficulty = d
	}

	if v := strings.TrimSpace(p.Type); v != "" {
		t := models.RecipeType(strings.ToUpper(v))
		if !t.Valid() {
			errs["type"] = fmt.Sprintf("unknown recipe type %q", v)
		}
		c.Type = t
	}

	if v := strings.TrimSpace(p.UserID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["userId"] = "must be a valid id"
		}
		c.UserID = id
	}

	var err error
	if c.Rations, err = ParseRange(p.Rations); err != nil {
		errs["rations"] = err.Error()
	}
	if c.Time, err = ParseRange(p.Time); err != nil {
		errs["time"] = err.Error()
	}
	if c.Sort, err = ParseSort(p.SortBy); err != nil {
		errs["sortBy"] = err.Error()
	}
	if c.Page, err = ParsePage(p.Page); err != nil {
		errs["page"] = err.Error()
	}

	if len(errs) > 0 {
		return Criteria{}, &ValidationError{Fields: errs}
	}
	return c, nil
}

// ParseRange reads a "min:max" token where either side may be omitted.
// A token without a colon matches exactly one value. An empty token is no
// constraint and returns nil.
func ParseRange(token string) (*Range, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	lo, hi, found := strings.Cut(token, ":")
	if !found {
		n, err := parseBound(lo)
		if err != nil {
			return nil, err
		}
		return &Range{Min: &n, Max: &n}, nil
	}
	if strings.Contains(hi, ":") {
		return nil, fmt.Errorf("range %q has more than one separator", token)
	}

	r := &Range{}
	if lo = strings.TrimSpace(lo); lo != "" {
		n, err := parseBound(lo)
		if err != nil {
			return nil, err
		}
		r.Min = &n
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		n, err := parseBound(hi)
		if err != nil {
			return nil, err
		}
		r.Max = &n
	}

	if r.Min == nil && r.Max == nil {
		return nil, fmt.Errorf("range %q has no bounds", token)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return nil, fmt.Errorf("range %q has min greater than max", token)
	}
	return r, nil
}

func parseBound(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bound %q is not an integer", s)
	}
	return n, nil
}

// ParseSort reads a comma separated list of field[:asc|desc] pairs
func ParseSort(token string) ([]Sort, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	var out []Sort
	seen := map[string]bool{}
	for _, pair := range strings.Split(token, ",") {
		field, dir, _ := strings.Cut(strings.TrimSpace(pair), ":")
		field = strings.ToLower(strings.TrimSpace(field))

		column, ok := sortColumns[field]
		if !ok {
			return nil, fmt.Errorf("cannot sort by %q", field)
		}
		if seen[field] {
			return nil, fmt.Errorf("field %q sorted twice", field)
		}
		seen[field] = true

		s := Sort{Column: column}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			s.Desc = true
		default:
			return nil, fmt.Errorf("unknown sort direction %q", dir)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParsePage reads a zero-based page index, defaulting to the first page
func ParsePage(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("page %q must be a non-negative integer", token)
	}
	if n > MaxPage {
		return 0, fmt.Errorf("page %q must be at most %d", token, MaxPage)
	}
	return n, nil
}
