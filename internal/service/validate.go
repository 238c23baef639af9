package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned for input rejected before it reaches storage.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateMessageCount accepts digits with an optional fractional part and an
// optional single K/M/B suffix in either case, e.g. "100", "2.5K", "3b".
func ValidateMessageCount(raw string) (bool, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false, "message count is required"
	}
	if s[0] == '+' || s[0] == '-' {
		return false, "message count must not be signed"
	}

	body := s
	switch s[len(s)-1] {
	case 'K', 'k', 'M', 'm', 'B', 'b':
		body = s[:len(s)-1]
	}
	if body == "" {
		return false, "message count must start with a digit"
	}

	intPart, fracPart, hasDot := strings.Cut(body, ".")
	if !allDigits(intPart) || (hasDot && !allDigits(fracPart)) {
		return false, invalidCountReason(body)
	}
	return true, ""
}

func invalidCountReason(body string) string {
	switch {
	case strings.IndexFunc(body, func(r rune) bool { return !strings.ContainsRune("0123456789.eEKkMmBb", r) }) >= 0:
		return "message count must be a number with an optional K, M or B suffix"
	case strings.ContainsAny(body, "eE"):
		return "message count must not use scientific notation"
	case strings.Count(body, ".") > 1:
		return "message count may contain at most one decimal point"
	case strings.ContainsAny(body, "KkMmBb"):
		return "message count may carry only one K, M or B suffix"
	default:
		return "message count must be a number with an optional K, M or B suffix"
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewValidator returns a validator that reports json field names and knows
// the "messagecount" tag. It panics if a tag cannot be registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "messagecount", func(fl validator.FieldLevel) bool {
		ok, _ := ValidateMessageCount(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

func (s *Service) validate(payload any) error {
	err := s.Validator.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	return fieldError(verrs[0])
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	var reason string
	switch fe.Tag() {
	case "required":
		reason = field + " is required"
	case "oneof":
		reason = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		reason = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		reason = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "messagecount":
		_, reason = ValidateMessageCount(fe.Value().(string))
	default:
		reason = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
	return &ValidationError{Field: field, Reason: reason}
}
