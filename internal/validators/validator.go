package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"homefinder-listings/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	alphaSpaceRegex = regexp.MustCompile(`^[A-Za-z ]+$`)
	zipRegex        = regexp.MustCompile(`^[0-9]{6}$`)
	instagramRegex  = regexp.MustCompile(`^(https?://)?(www\.)?(instagram\.com|instagr\.am)/(p|reel|tv)/[A-Za-z0-9_-]+/?(\?.*)?$`)
	phoneRegex      = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

var (
	instance     *validator.Validate
	instanceOnce sync.Once
)

// ValidationError lists every rejected field keyed by its JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func get() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "alphaspace", func(fl validator.FieldLevel) bool {
			return alphaSpaceRegex.MatchString(fl.Field().String())
		})
		mustRegister(v, "zip6", func(fl validator.FieldLevel) bool {
			return zipRegex.MatchString(fl.Field().String())
		})
		mustRegister(v, "propertytype", func(fl validator.FieldLevel) bool {
			return models.PropertyType(fl.Field().String()).Valid()
		})
		mustRegister(v, "instagram", func(fl validator.FieldLevel) bool {
			return IsInstagramURL(fl.Field().String())
		})
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// IsInstagramURL accepts post, reel and tv links on instagram.com or instagr.am.
func IsInstagramURL(s string) bool {
	return instagramRegex.MatchString(strings.TrimSpace(s))
}

// IsPhone accepts up to 16 digits with an optional leading plus. Common
// separators are stripped first.
func IsPhone(s string) bool {
	return phoneRegex.MatchString(phoneSeparators.Replace(strings.TrimSpace(s)))
}

// validateStruct runs the tag rules and converts failures to a ValidationError.
func validateStruct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "alphaspace":
		return field + " may only contain letters and spaces"
	case "zip6":
		return field + " must be exactly 6 digits"
	case "propertytype":
		return field + " is not a known property type"
	case "instagram":
		return field + " must be an Instagram post, reel or tv link"
	case "phone":
		return field + " must be a valid phone number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
