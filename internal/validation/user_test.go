package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "ada@example.com", false},
		{"Valid With Dot", "ada.lovelace@example.co", false},
		{"Valid With Dash", "ada-lovelace@my-host.org", false},
		{"Empty", "", true},
		{"Whitespace Only", "   ", true},
		{"No At Sign", "ada.example.com", true},
		{"No TLD", "ada@example", true},
		{"Long TLD", "ada@example.technology", true},
		{"Spaces Inside", "ada lovelace@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("a-much-longer-password"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("first name", "Ada"))
	assert.Error(t, ValidateName("first name", ""))
	assert.Error(t, ValidateName("first name", "   "))
	assert.Error(t, ValidateName("first name", strings.Repeat("a", 101)))
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name                                 string
		firstName, lastName, email, password string
		wantErr                              string
	}{
		{"Valid", "Ada", "Lovelace", "ada@example.com", "password123", ""},
		{"Missing First Name", "", "Lovelace", "ada@example.com", "password123", "first name is required"},
		{"Missing Last Name", "Ada", "", "ada@example.com", "password123", "last name is required"},
		{"Bad Email", "Ada", "Lovelace", "nope", "password123", "please provide a valid email address"},
		{"Short Password", "Ada", "Lovelace", "ada@example.com", "123", "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.firstName, tt.lastName, tt.email, tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
