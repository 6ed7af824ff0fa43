package records

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownField is returned when a draft has no field with the given name.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when raw input cannot be stored in a field.
	ErrInvalidValue = errors.New("invalid value")
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Coercer turns raw form input into typed field values.
//
// In the default (lenient) mode a numeric field that does not parse is stored
// as 0, a leading numeric prefix such as "42kg" is accepted and integers past
// the int range are clamped to it. Strict mode
// rejects anything that is not a complete number with ErrInvalidValue.
type Coercer struct {
	Strict bool
}

// Int coerces raw into an integer field value.
func (c Coercer) Int(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	if c.Strict {
		return 0, fmt.Errorf("%s: %q is not an integer: %w", field, raw, ErrInvalidValue)
	}
	// Out-of-range digits clamp to the int limits, which Atoi reports with ErrRange.
	if m := leadingInt.FindString(s); m != "" {
		if v, err := strconv.Atoi(m); err == nil || errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
	}
	return 0, nil
}

// Float coerces raw into a decimal field value.
func (c Coercer) Float(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !isSpecial(s) {
		return v, nil
	}
	if c.Strict {
		return 0, fmt.Errorf("%s: %q is not a number: %w", field, raw, ErrInvalidValue)
	}
	if m := leadingFloat.FindString(s); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, nil
		}
	}
	return 0, nil
}

// Date coerces raw into a calendar date. Date values come from a picker, so a
// malformed date is always an error regardless of mode.
func (c Coercer) Date(field, raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("%s: %q is not a date (want YYYY-MM-DD): %w", field, raw, ErrInvalidValue)
}

// UnknownField builds the error drafts return for an unrecognised field name.
func UnknownField(field string) error {
	return fmt.Errorf("%q: %w", field, ErrUnknownField)
}

// strconv accepts "NaN" and "Inf", form input should not.
func isSpecial(s string) bool {
	l := strings.ToLower(strings.TrimLeft(s, "+-"))
	return strings.HasPrefix(l, "nan") || strings.HasPrefix(l, "inf")
}
