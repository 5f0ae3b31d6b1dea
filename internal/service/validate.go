package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sanchezegido/recipedia/internal/types"
)

// NewValidator returns a validator that reads the same `binding` tags gin uses
// and reports fields by their json names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(JSONFieldName)
	return v
}

// JSONFieldName names a struct field by its json tag
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// FieldErrors flattens validator failures into a field to message map. Errors
// that are not validation failures are reported under "body".
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe.Tag(), fe.Param())
	}
	return fields
}

func fieldMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + param
	case "min":
		return "must be at least " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "unique":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}

func (s *RecipeService) validateStruct(v interface{}) error {
	if err := s.validate.Struct(v); err != nil {
		return validationError(FieldErrors(err))
	}
	return nil
}

// validateRecipe trims the ingredient and tag names of req in place, then
// validates it. Names within one collection must differ ignoring case.
func (s *RecipeService) validateRecipe(req *types.RecipeRequest) error {
	trimAll(req.Ingredients)
	trimAll(req.Tags)
	if err := s.validateStruct(req); err != nil {
		return err
	}
	fields := map[string]string{}
	if hasFoldDuplicate(req.Ingredients) {
		fields["ingredients"] = fieldMessage("unique", "")
	}
	if hasFoldDuplicate(req.Tags) {
		fields["tags"] = fieldMessage("unique", "")
	}
	if len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}

func trimAll(names []string) {
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
}

func hasFoldDuplicate(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}
