package parking

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

// Unit numbers of the building
const (
	MinUnitNumber = 1
	MaxUnitNumber = 65
)

var (
	ErrNoDateSelected = errors.New("no date selected")
	ErrUnitOutOfRange = errors.New("unit number out of range")
	ErrMissingField   = errors.New("required field missing")
	ErrInvalidField   = errors.New("invalid field value")
	ErrUnknownField   = errors.New("unknown field")
)

var requestValidator = newValidator()

// Validator returns the shared struct validator. Field names in its errors are
// the json names, so they match the Field constants.
func Validator() *validator.Validate {
	return requestValidator
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError names the field that was left empty (Rule "required") or holds
// an invalid value (any other rule, e.g. "email")
type FieldError struct {
	Field Field
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Unwrap(), e.Field)
}

func (e *FieldError) Unwrap() error {
	if e.Rule == "" || e.Rule == "required" {
		return ErrMissingField
	}
	return ErrInvalidField
}

// UnknownFieldError is returned when binding a value to a field that does not exist
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownField, e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// ParseUnitNumber parses raw as an integer in [MinUnitNumber, MaxUnitNumber].
// Anything non-numeric fails the same way as an out-of-range number.
func ParseUnitNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnitOutOfRange, raw)
	}
	if n < MinUnitNumber || n > MaxUnitNumber {
		return 0, fmt.Errorf("%w: %d", ErrUnitOutOfRange, n)
	}
	return n, nil
}

// Validate checks a draft against the selected dates. The first failure wins:
// dates, then unit number, then the remaining fields in display order.
func Validate(dates []calendar.Day, d Draft) error {
	if len(dates) == 0 {
		return ErrNoDateSelected
	}
	if _, err := ParseUnitNumber(d.UnitNumber); err != nil {
		return err
	}

	err := requestValidator.Struct(d.Trimmed())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate draft: %w", err)
	}
	return firstFieldError(verrs)
}

// firstFieldError picks the failing field that comes first on the form
func firstFieldError(verrs validator.ValidationErrors) *FieldError {
	var first *FieldError
	rank := len(Fields)
	for _, fe := range verrs {
		for i, f := range Fields {
			if string(f) == fe.Field() && i < rank {
				rank = i
				first = &FieldError{Field: f, Rule: fe.Tag()}
			}
		}
	}
	if first == nil {
		fe := verrs[0]
		first = &FieldError{Field: Field(fe.Field()), Rule: fe.Tag()}
	}
	return first
}
