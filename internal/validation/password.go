// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = validator.New()
	userNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	maxEmailLength    = 254
)

// ValidatePassword checks that a password has at least one ASCII lowercase
// letter, one ASCII uppercase letter, one digit and is at least six
// characters long. Other characters are allowed but satisfy no class.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if length > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	return nil
}

// ValidateUserName checks if a user name meets requirements
func ValidateUserName(userName string) error {
	if len(userName) < 3 {
		return fmt.Errorf("userName must be at least 3 characters long")
	}
	if len(userName) > 30 {
		return fmt.Errorf("userName must not exceed 30 characters")
	}
	if !userNameRegex.MatchString(userName) {
		return fmt.Errorf("userName can only contain letters, numbers, dots, underscores, and hyphens")
	}

	first, last := userName[0], userName[len(userName)-1]
	if strings.ContainsRune("_.-", rune(first)) || strings.ContainsRune("_.-", rune(last)) {
		return fmt.Errorf("userName cannot start or end with a dot, underscore or hyphen")
	}
	return nil
}

// ValidateEmail checks the shape and length of an email address.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLength)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// ValidateURL checks that link is an absolute http(s) URL.
func ValidateURL(link string) error {
	if err := validate.Var(link, "required,http_url"); err != nil {
		return fmt.Errorf("must be a valid http or https URL")
	}
	return nil
}
