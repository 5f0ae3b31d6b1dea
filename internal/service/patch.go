package service

import (
	"encoding/json"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/sanchezegido/recipedia/internal/models"
)

// fieldPatch decodes one raw value, validates it and applies it to a recipe
type fieldPatch func(v *validator.Validate, r *models.Recipe, raw json.RawMessage) (string, bool)

func stringPatch(rule string, set func(*models.Recipe, string)) fieldPatch {
	return func(v *validator.Validate, r *models.Recipe, raw json.RawMessage) (string, bool) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "must be a string", false
		}
		if msg, ok := check(v, s, rule); !ok {
			return msg, false
		}
		set(r, s)
		return "", true
	}
}

func intPatch(rule string, set func(*models.Recipe, int)) fieldPatch {
	return func(v *validator.Validate, r *models.Recipe, raw json.RawMessage) (string, bool) {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return "must be an integer", false
		}
		if msg, ok := check(v, n, rule); !ok {
			return msg, false
		}
		set(r, n)
		return "", true
	}
}

func check(v *validator.Validate, value interface{}, rule string) (string, bool) {
	err := v.Var(value, rule)
	if err == nil {
		return "", true
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return fieldMessage(verrs[0].Tag(), verrs[0].Param()), false
	}
	return "is invalid", false
}

var patches = map[string]fieldPatch{
	"name":        stringPatch("required,max=255", func(r *models.Recipe, s string) { r.Name = s }),
	"description": stringPatch("max=1000", func(r *models.Recipe, s string) { r.Description = s }),
	"steps":       stringPatch("required", func(r *models.Recipe, s string) { r.Steps = s }),
	"difficulty":  stringPatch("required,oneof=EASY MEDIUM HARD", func(r *models.Recipe, s string) { r.Difficulty = models.Difficulty(s) }),
	"kitchen":     stringPatch("max=100", func(r *models.Recipe, s string) { r.Kitchen = s }),
	"rations":     intPatch("min=1", func(r *models.Recipe, n int) { r.Rations = n }),
	"time":        intPatch("min=1", func(r *models.Recipe, n int) { r.Time = n }),
	"type":        stringPatch("required,oneof=STARTER MAIN_COURSE DESSERT SIDE_DISH DRINK", func(r *models.Recipe, s string) { r.Type = models.RecipeType(s) }),
}

// PatchableFields lists the body keys a partial update recognises
func PatchableFields() []string {
	fields := make([]string, 0, len(patches))
	for f := range patches {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// applyPatch merges the recognised keys of body into r. Unknown keys are
// ignored; r is left untouched unless every recognised value is valid.
func applyPatch(v *validator.Validate, r *models.Recipe, body map[string]json.RawMessage) error {
	next := *r
	recognised := 0
	invalid := map[string]string{}
	for field, patch := range patches {
		raw, ok := body[field]
		if !ok {
			continue
		}
		recognised++
		if msg, ok := patch(v, &next, raw); !ok {
			invalid[field] = msg
		}
	}
	if recognised == 0 {
		return &Error{Kind: KindValidation, Code: CodeNoRecognizedFields}
	}
	if len(invalid) > 0 {
		return validationError(invalid)
	}
	*r = next
	return nil
}
