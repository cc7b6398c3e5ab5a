package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
const jsonTagParts = 2

var (
	// ErrValidation indicates the body decoded but its content is invalid.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates the body is not a JSON object, or a value has the
	// wrong JSON type.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors are reported under
// their JSON names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validate
}

// Validate checks v's struct tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// FieldSetError reports a body whose keys are not the ones expected.
type FieldSetError struct {
	Missing []string
	Unknown []string
	Null    []string
}

// Error implements the error interface.
func (e *FieldSetError) Error() string {
	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}

	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown fields: "+strings.Join(e.Unknown, ", "))
	}

	if len(e.Null) > 0 {
		parts = append(parts, "null fields: "+strings.Join(e.Null, ", "))
	}

	return "invalid field set: " + strings.Join(parts, "; ")
}

// Unwrap returns ErrValidation.
func (e *FieldSetError) Unwrap() error {
	return ErrValidation
}

// Details renders the error per field for the response envelope.
func (e *FieldSetError) Details() map[string]string {
	details := make(map[string]string, len(e.Missing)+len(e.Unknown)+len(e.Null))

	for _, f := range e.Missing {
		details[f] = validationMessages["required"]
	}

	for _, f := range e.Unknown {
		details[f] = "unknown field"
	}

	for _, f := range e.Null {
		details[f] = "must not be null"
	}

	return details
}

// FieldsMatch reports whether given holds exactly the names in required,
// no more and no fewer.
func FieldsMatch(required, given []string) bool {
	return len(MissingFields(required, given)) == 0 && len(UnknownFields(required, given)) == 0
}

// MissingFields returns the names in required that are absent from given,
// sorted.
func MissingFields(required, given []string) []string {
	return difference(required, given)
}

// UnknownFields returns the names in given that are not in allowed, sorted.
func UnknownFields(allowed, given []string) []string {
	return difference(given, allowed)
}

func difference(a, b []string) []string {
	var out []string

	for _, s := range a {
		if !slices.Contains(b, s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	sort.Strings(out)

	return out
}

// DecodeObject parses raw as a single JSON object and returns its members
// undecoded. Anything else (arrays, scalars, trailing data) is ErrBinding.
func DecodeObject(raw []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBinding, err)
	}

	if obj == nil {
		return nil, fmt.Errorf("%w: body is null", ErrBinding)
	}

	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrBinding)
	}

	return obj, nil
}

// Keys returns the member names of obj, sorted.
func Keys(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// BindStrict reads the request body, requires its key set to equal fields
// exactly, then decodes it into v and validates v.
func BindStrict(c *gin.Context, fields []string, v any) error {
	raw, obj, err := readObject(c)
	if err != nil {
		return err
	}

	keys := Keys(obj)
	if !FieldsMatch(fields, keys) {
		return &FieldSetError{
			Missing: MissingFields(fields, keys),
			Unknown: UnknownFields(fields, keys),
		}
	}

	return decodeAndValidate(raw, v)
}

// PartialBody is a PATCH body whose key set has been checked but whose
// values are not decoded yet.
type PartialBody struct {
	raw []byte
}

// ReadPartial reads the request body, allowing any subset of fields. Unknown
// keys and explicit nulls are rejected. Values are left for Decode, so the
// caller can resolve the target resource first.
func ReadPartial(c *gin.Context, fields []string) (*PartialBody, error) {
	raw, obj, err := readObject(c)
	if err != nil {
		return nil, err
	}

	keys := Keys(obj)

	fsErr := &FieldSetError{Unknown: UnknownFields(fields, keys)}

	for _, k := range keys {
		if slices.Contains(fields, k) && bytes.Equal(bytes.TrimSpace(obj[k]), []byte("null")) {
			fsErr.Null = append(fsErr.Null, k)
		}
	}

	if len(fsErr.Unknown) > 0 || len(fsErr.Null) > 0 {
		return nil, fsErr
	}

	return &PartialBody{raw: raw}, nil
}

// Decode decodes the body into v and validates v.
func (b *PartialBody) Decode(v any) error {
	return decodeAndValidate(b.raw, v)
}

func readObject(c *gin.Context) ([]byte, map[string]json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading body: %w", ErrBinding, err)
	}

	obj, err := DecodeObject(raw)
	if err != nil {
		return nil, nil, err
	}

	return raw, obj, nil
}

func decodeAndValidate(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors extracts field-level messages from a validator error.
func ValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	return fieldErrors
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

// validationMessages maps validation tags to message templates.
// {param} is replaced with the tag's parameter.
var validationMessages = map[string]string{
	"required":    "this field is required",
	"len":         "must be exactly {param} characters",
	"hexadecimal": "must be hexadecimal",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}
