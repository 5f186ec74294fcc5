package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Secure1", false},
		{"Exactly Min Length", "Abcde1", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 126) + "1", false},
		{"Too Short", "Ab1", true},
		{"Too Long", "A" + strings.Repeat("b", 127) + "1", true},
		{"No Upper", "secure12", true},
		{"No Lower", "SECURE12", true},
		{"No Digit", "SecurePass", true},
		{"Special Characters Allowed", "Secure1!", false},
		{"Unicode Alongside Ascii Classes", "Ångström1A", false},
		{"Non-Ascii Upper Only", "Ångstrom1", true},
		{"Five Characters Six Bytes", "Ab1éé", true},
		{"Six Characters With Multibyte", "Ab1éé!", false},
		{"Accented Capitals Only", "ÀÉÎabc1", true},
		{"Leading Accented Capital", "Éabcd1", true},
		{"Max Length Counts Characters", "Ab1" + strings.Repeat("é", 126), true},
		{"Max Length Multibyte", "Ab1" + strings.Repeat("é", 125), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUserName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		userName string
		wantErr  bool
	}{
		{"Valid", "test_user123", false},
		{"Dotted", "jane.doe", false},
		{"Too Short", "tu", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Starts Dash", "-user", true},
		{"Ends Underscore", "user_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserName(tt.userName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Plus Addressing", "test+media@example.co.uk", false},
		{"Empty", "", true},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"Space In Local Part", "user @example.com", true},
		{"Too Long", strings.Repeat("a", 250) + "@example.com", true},
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

func TestValidateURL(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateURL("https://videos.example.com/watch?v=42"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("not a url"))
	assert.Error(t, ValidateURL("/relative/path"))
}
