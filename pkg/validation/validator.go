package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance shared by all document types
	validate *validator.Validate

	// MaxNameLength bounds part, template, port and device names
	MaxNameLength = 128

	namePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

func init() {
	validate = validator.New()

	// Report yaml field names rather than Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister("partname", func(fl validator.FieldLevel) bool {
		return ValidateName(fl.Field().String()) == nil
	})
	mustRegister("edgetype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "0", "+", "-":
			return true
		}
		return false
	})
	mustRegister("edgesignal", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "+", "-":
			return true
		}
		return false
	})
	mustRegister("binary", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), "01") == ""
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates v against its `validate` struct tags and returns the first
// failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("document cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateName checks a part, port or template name
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name '%s' exceeds maximum length of %d characters", name, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name '%s' contains invalid characters (letters, digits, '_', '.', '-' allowed)", name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "partname":
			return fmt.Errorf("%s: '%v' is not a valid name", field, e.Value())
		case "edgetype":
			return fmt.Errorf("%s: '%v' is not an edge type (+, -, 0)", field, e.Value())
		case "edgesignal":
			return fmt.Errorf("%s: '%v' is not an edge signal (+, -)", field, e.Value())
		case "binary":
			return fmt.Errorf("%s: '%v' must contain only 0 and 1", field, e.Value())
		case "required_without", "excluded_with":
			return fmt.Errorf("%s: conflicts with %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
