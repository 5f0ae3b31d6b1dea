package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a service failure; the transport maps each kind to one status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindUnsupportedMedia
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindConflict:
		return "CONFLICT"
	case KindUnsupportedMedia:
		return "UNSUPPORTED_MEDIA"
	default:
		return "INTERNAL"
	}
}

// Machine-readable codes carried by unauthorized and conflict errors
const (
	CodeUpdateUnauthorized  = "UPDATE_UNAUTHORIZED"
	CodeDeleteUnauthorized  = "DELETE_UNAUTHORIZED"
	CodeDuplicateRecipe     = "DUPLICATE_RECIPE"
	CodeDuplicateIngredient = "DUPLICATE_INGREDIENT"
	CodeDuplicateTag        = "DUPLICATE_TAG"
	CodeDuplicateReview     = "DUPLICATE_REVIEW"
	CodeNoRecognizedFields  = "NO_RECOGNIZED_FIELDS"
	CodeInternal            = "INTERNAL_ERROR"
)

// Error is the single error type returned by the recipe service
type Error struct {
	Kind Kind
	// Code is set for unauthorized, conflict and internal errors
	Code string
	// Fields maps each rejected input field to a reason, for validation errors
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(e.Kind.String()))
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, e.Fields[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when the addressed recipe does not exist
var ErrNotFound = &Error{Kind: KindNotFound}

// ErrUnsupportedMedia is returned when no acceptable representation exists
var ErrUnsupportedMedia = &Error{Kind: KindUnsupportedMedia}

func validationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func conflict(code string, err error) *Error {
	return &Error{Kind: KindConflict, Code: code, Err: err}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
