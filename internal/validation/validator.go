package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"medialane/internal/models"
)

// Validator collects field errors. Every rule runs even if an earlier rule
// on the same or another field failed.
type Validator struct {
	errors []models.FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Add records a failed rule.
func (v *Validator) Add(field, message string) {
	v.errors = append(v.errors, models.FieldError{Field: field, Message: message})
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, field+" is required")
}

// Email validates an email address.
func (v *Validator) Email(field, value string) {
	if err := ValidateEmail(value); err != nil {
		v.Add(field, err.Error())
	}
}

// Password validates password complexity.
func (v *Validator) Password(field, value string) {
	if err := ValidatePassword(value); err != nil {
		v.Add(field, err.Error())
	}
}

// UserName validates a user name.
func (v *Validator) UserName(field, value string) {
	if err := ValidateUserName(value); err != nil {
		v.Add(field, err.Error())
	}
}

// URL validates an http(s) link.
func (v *Validator) URL(field, value string) {
	if err := ValidateURL(value); err != nil {
		v.Add(field, field+" "+err.Error())
	}
}

// Phone validates the (dialCode, isoCode, number) triple.
func (v *Validator) Phone(field, dialCode, isoCode, number string) {
	if err := ValidatePhone(dialCode, isoCode, number); err != nil {
		v.Add(field, err.Error())
	}
}

// IntRange checks min <= value <= max.
func (v *Validator) IntRange(field string, value, minValue, maxValue int) {
	v.Check(value >= minValue && value <= maxValue, field,
		fmt.Sprintf("%s must be between %d and %d", field, minValue, maxValue))
}

// Positive checks value > 0.
func (v *Validator) Positive(field string, value float64) {
	v.Check(value > 0, field, field+" must be greater than zero")
}

// MinLength checks the rune length of a trimmed value.
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(strings.TrimSpace(value)) >= n, field,
		fmt.Sprintf("%s must be at least %d characters", field, n))
}

// MaxLength checks the rune length of a value.
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) <= n, field,
		fmt.Sprintf("%s must not exceed %d characters", field, n))
}

// OneOf checks that value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) {
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	v.Add(field, fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
}

// Valid reports whether no rule has failed.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the accumulated field errors.
func (v *Validator) Errors() []models.FieldError {
	return v.errors
}

// Err returns nil when valid, otherwise a 400 error carrying every failure.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return models.NewFieldErrors(v.errors)
}
