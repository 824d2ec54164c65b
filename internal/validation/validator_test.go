package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatehub/internal/catalog/models"
	domainerrors "templatehub/internal/errors"
)

func TestValidate_ValidEntry(t *testing.T) {
	v := New()
	err := v.Validate(models.Entry{Slug: "a", Title: "A", Description: "desc"})
	assert.NoError(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	v := New()
	err := v.Validate(models.Entry{Slug: "a"})
	require.Error(t, err)

	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	details, ok := domainerrors.DetailsOf(err).(map[string]string)
	require.True(t, ok, "expected field details")
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "is required", details["description"])
	assert.NotContains(t, details, "slug")
}

func TestValidate_EmptyTagID(t *testing.T) {
	v := New()
	err := v.Validate(models.Entry{Slug: "a", Title: "A", Description: "d", Tags: []string{"ts", ""}})
	require.Error(t, err)

	details, ok := domainerrors.DetailsOf(err).(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "tags[1]")
}
