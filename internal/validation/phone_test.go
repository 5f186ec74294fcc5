package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		dialCode string
		isoCode  string
		number   string
		wantErr  bool
	}{
		{"Valid US", "+1", "US", "2015550123", false},
		{"Valid GB Without Plus", "44", "gb", "7400123456", false},
		{"Unknown Country", "+999", "XX", "2015550123", true},
		{"Dial Code Mismatch", "+44", "US", "2015550123", true},
		{"Too Short", "+1", "US", "123", true},
		{"Garbage", "+1", "US", "call me", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.dialCode, tt.isoCode, tt.number)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
