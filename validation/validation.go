// Package validation turns raw request bodies into typed create and patch
// payloads. Each field is decoded on its own so that every offending field is
// reported, then the struct's `validate` tags are checked.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
	})
	return validate
}

// Decode fills dst (a pointer to a models *Input or *Patch struct) from body.
// It returns an *errs.ApiErr with status 400 when the body is not a JSON
// object or when any field fails decoding or validation. Unknown keys are
// ignored. An empty body decodes as an empty object.
func Decode(body []byte, entity string, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return errs.NewInvalidJSONError(err)
	}

	violations := decodeFields(raw, dst)
	if len(violations) > 0 {
		return errs.NewValidationError(entity, violations)
	}

	if err := engine().Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errs.NewValidationError(entity, []errs.FieldViolation{{Message: err.Error()}})
		}
		for _, fe := range fieldErrs {
			violations = append(violations, errs.FieldViolation{
				Field:   fe.Field(),
				Message: describe(fe),
			})
		}
		return errs.NewValidationError(entity, violations)
	}

	return nil
}

func decodeFields(raw map[string]json.RawMessage, dst any) []errs.FieldViolation {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	var violations []errs.FieldViolation
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}

		value, ok := raw[name]
		if !ok {
			continue
		}

		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			violations = append(violations, errs.FieldViolation{
				Field:   name,
				Message: describeDecodeError(field.Type, err),
			})
		}
	}
	return violations
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func describeDecodeError(t reflect.Type, err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return err.Error()
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "must be a string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "must be an integer"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Slice:
		return "must be an array of strings"
	default:
		return fmt.Sprintf("has an invalid type (%s)", typeErr.Value)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
