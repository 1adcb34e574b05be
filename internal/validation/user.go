// Package validation holds request-level field validation shared by the
// account services and handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// ValidateEmail checks the address against the registration format rules.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("please provide a valid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateName checks a required human name field.
func ValidateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > 100 {
		return fmt.Errorf("%s must be at most 100 characters", field)
	}
	return nil
}

// ValidateRegistration runs every registration field check and returns the
// first failure.
func ValidateRegistration(firstName, lastName, email, password string) error {
	if err := ValidateName("first name", firstName); err != nil {
		return err
	}
	if err := ValidateName("last name", lastName); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
