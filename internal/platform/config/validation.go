package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// Problem is one rejected config key.
type Problem struct {
	Key    string
	Reason string
}

func (p Problem) String() string {
	return p.Key + " " + p.Reason
}

// ValidationError lists every rejected key.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}

	return "config validation failed:\n  " + strings.Join(lines, "\n  ")
}

// Keys returns the rejected keys in report order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		keys[i] = p.Key
	}

	return keys
}

// Validate checks the loaded config. blogd refuses to start when it fails.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Problems: make([]Problem, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Problems = append(verr.Problems, Problem{
			Key:    formatFieldPath(fe.Namespace()),
			Reason: reasonFor(fe),
		})
	}

	return verr
}

// reasons maps a validator tag to its message; %s is the tag parameter.
var reasons = map[string]string{
	"required":    "is required",
	"required_if": "is required when %s",
	"min":         "must be at least %s",
	"max":         "must be at most %s",
	"oneof":       "must be one of: %s",
	"url":         "must be a valid URL",
	"startswith":  "must start with %q",
}

func reasonFor(fe validator.FieldError) string {
	format, ok := reasons[fe.Tag()]
	if !ok {
		return "failed validation: " + fe.Tag()
	}

	if strings.Contains(format, "%") {
		return fmt.Sprintf(format, fe.Param())
	}

	return format
}

// formatFieldPath turns "Config.server.max_request_size" into
// "server.max_request_size".
func formatFieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}

	return strings.ToLower(rest)
}
