package validation

import (
	"errors"
	"testing"

	"medialane/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_AccumulatesEveryFailure(t *testing.T) {
	v := New()
	v.Required("title", "  ")
	v.MinLength("summary", "too short", 100)
	v.IntRange("count", 6, 1, 5)
	v.Email("email", "nope")
	v.Password("password", "weak")

	require.False(t, v.Valid())
	fields := make([]string, 0, len(v.Errors()))
	for _, fe := range v.Errors() {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"title", "summary", "count", "email", "password"}, fields)

	var appErr *models.AppError
	require.True(t, errors.As(v.Err(), &appErr))
	assert.Equal(t, 400, appErr.Status)
	assert.Len(t, appErr.Fields, 5)
}

func TestValidator_SameFieldRunsAllRules(t *testing.T) {
	v := New()
	v.Required("title", "")
	v.MinLength("title", "", 3)

	assert.Len(t, v.Errors(), 2)
}

func TestValidator_ValidReturnsNilErr(t *testing.T) {
	v := New()
	v.Required("title", "Hello")
	v.IntRange("count", 5, 1, 5)
	v.OneOf("status", "active", "active", "inactive")
	v.URL("link", "https://example.com/v/1")

	assert.True(t, v.Valid())
	assert.NoError(t, v.Err())
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("status", "archived", "active", "inactive")
	require.Len(t, v.Errors(), 1)
	assert.Contains(t, v.Errors()[0].Message, "active, inactive")
}

func TestIsReservedSlug(t *testing.T) {
	assert.True(t, IsReservedSlug("me"))
	assert.True(t, IsReservedSlug("tags"))
	assert.False(t, IsReservedSlug("my-first-article"))
}
