package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	pageNamePattern = regexp.MustCompile(`^[^/\s?#]+$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the domain rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pagename", func(fl validator.FieldLevel) bool {
			return pageNamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return contains(Categories, fl.Field().String())
		})
		_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			return contains(Themes, fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs the domain rules over s and returns a readable message on failure.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, ValidationMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidationMessage turns a single field error into client-facing text.
func ValidationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		if field == "services" {
			return fmt.Sprintf("Maximum %d services allowed", MaxServices)
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "username":
		return "Username can only contain letters, numbers and underscores"
	case "pagename":
		return "Page name must not contain whitespace or URL separators"
	case "category":
		return fmt.Sprintf("%q is not a valid category", fe.Value())
	case "theme":
		return fmt.Sprintf("%q is not a valid theme", fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

func contains(values []string, v string) bool {
	for _, allowed := range values {
		if allowed == v {
			return true
		}
	}
	return false
}
