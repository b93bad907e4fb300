package services

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"efgportal/internal/domain"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports JSON field names and knows the profile option sets.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("company_size", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.CompanySizes, fl.Field().String())
	})
	_ = v.RegisterValidation("role_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.RoleTypes, fl.Field().String())
	})
	_ = v.RegisterValidation("looking_for", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.LookingForOptions, fl.Field().String())
	})
	return v
}

// toValidationError converts validator failures into a domain.ValidationError keyed by JSON field name.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range vErrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		out.Add(field, validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "company_size":
		return "must be one of " + strings.Join(domain.CompanySizes, ", ")
	case "role_type":
		return "must be one of " + strings.Join(domain.RoleTypes, ", ")
	case "looking_for":
		return "contains an unknown option"
	case "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}
