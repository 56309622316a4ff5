package models_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create: %w", models.ValidationError{Field: "title", Message: "title is required"})

	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.False(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, "create: title: title is required", err.Error())

	var verr models.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
}

func TestDependencyErrorUnwraps(t *testing.T) {
	err := &models.DependencyError{Op: "search documents", Err: context.DeadlineExceeded}

	assert.True(t, errors.Is(err, models.ErrDependency))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "search documents: context deadline exceeded", err.Error())
}

func TestTitles(t *testing.T) {
	docs := []models.Document{{Title: "A"}, {Title: "B"}, {Title: "A"}}
	assert.Equal(t, []string{"A", "B", "A"}, models.Titles(docs))
	assert.Empty(t, models.Titles(nil))
}
