package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// Chooser is implemented by enumerations checked with the "choice" tag.
type Chooser interface {
	Valid() bool
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance. Field names in errors are
// the JSON names of the struct fields.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("choice", validateChoice)
	})
	return validate
}

// RegisterCustomTypeFunc lets model packages expose wrapper types (dates,
// nullable values) to the validator as their underlying value.
func RegisterCustomTypeFunc(fn validator.CustomTypeFunc, types ...interface{}) {
	Validator().RegisterCustomTypeFunc(fn, types...)
}

// Struct validates v and returns the first failure as a field error.
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), formatValidationError(fe))
	}
	return apperrors.NewValidationError("", err.Error())
}

// Var validates a single value against tag and reports failures on field.
func Var(field string, value interface{}, tag string) error {
	err := Validator().Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewValidationError(field, field+formatValidationError(fieldErrs[0]))
	}
	return apperrors.NewValidationError(field, err.Error())
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateChoice(fl validator.FieldLevel) bool {
	c, ok := fl.Field().Interface().(Chooser)
	if !ok {
		return false
	}
	return c.Valid()
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		if e.Kind() == reflect.String {
			return field + " must be at least " + e.Param() + " characters long"
		}
		return field + " must be at least " + e.Param()
	case "max", "lte":
		if e.Kind() == reflect.String {
			return field + " must be at most " + e.Param() + " characters long"
		}
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "choice":
		return field + " is not a valid choice"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
