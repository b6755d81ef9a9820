// Package request decodes and validates JSON request bodies. Failures come
// back as *entity.ValidationError so handlers answer them like any other
// invalid input.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"guidepedia/internal/domain/entity"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field names in errors are the
// JSON names.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Decode reads one JSON object from the body into dst and validates it.
// Unknown fields are rejected.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if dec.More() {
		return &entity.ValidationError{Field: "body", Message: "must contain a single JSON object"}
	}
	return Validate(dst)
}

// Validate checks dst's validate tags and reports the first failing field.
func Validate(dst any) error {
	err := Validator().Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &entity.ValidationError{Field: fe.Field(), Message: message(fe)}
	}
	return fmt.Errorf("validate request: %w", err)
}

func bodyError(err error) error {
	var (
		maxErr  *http.MaxBytesError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF):
		return &entity.ValidationError{Field: "body", Message: "must not be empty"}
	case errors.As(err, &maxErr):
		return &entity.ValidationError{Field: "body", Message: fmt.Sprintf("must be at most %d bytes", maxErr.Limit)}
	case errors.As(err, &typeErr):
		return &entity.ValidationError{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &entity.ValidationError{Field: field, Message: "is not a known field"}
	default:
		return &entity.ValidationError{Field: "body", Message: "must be valid JSON"}
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
