package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "enigma/pkg/domain-errors"
)

var (
	accessIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9-]{8,50}$`)
	displayNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`)
	hintPasswordPattern = regexp.MustCompile(`^[!-~]+$`)
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("accessid", func(fl validator.FieldLevel) bool {
		return IsAccessID(fl.Field().String())
	})
	_ = v.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
		return displayNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hintpassword", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || hintPasswordPattern.MatchString(s)
	})
	return v
}

// IsAccessID reports whether s has the shape of an access UUID
// (user-, admin-, dash- and hint- identifiers all qualify).
func IsAccessID(s string) bool {
	return accessIDPattern.MatchString(s)
}

// Validate validates a struct using the default validator and returns a domain error.
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// ErrorMessage converts a validator error into a human-readable message.
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s allows at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "accessid":
		return fmt.Sprintf("%s is not a valid access UUID", field)
	case "displayname", "hintpassword":
		return fmt.Sprintf("%s contains invalid characters", field)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
