package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrValidation, ErrInvalidID, ErrUnavailable}

	tests := []struct {
		name     string
		err      error
		sentinel error
		is       func(error) bool
		message  string
	}{
		{
			name:     "not found with id",
			err:      NewNotFoundError("quote", "abc"),
			sentinel: ErrNotFound,
			is:       IsNotFound,
			message:  `quote with id "abc" not found`,
		},
		{
			name:     "not found without id",
			err:      NewNotFoundError("quote", ""),
			sentinel: ErrNotFound,
			is:       IsNotFound,
			message:  "quote not found",
		},
		{
			name:     "not found with message",
			err:      NewNotFoundErrorWithMessage("quote", "", "No quotes found"),
			sentinel: ErrNotFound,
			is:       IsNotFound,
			message:  "No quotes found",
		},
		{
			name:     "conflict",
			err:      NewConflictError("quote", "duplicate id"),
			sentinel: ErrConflict,
			is:       IsConflict,
			message:  "quote conflict: duplicate id",
		},
		{
			name:     "conflict with details",
			err:      NewConflictErrorWithDetails("quote", "duplicate id", "E11000"),
			sentinel: ErrConflict,
			is:       IsConflict,
			message:  "quote conflict: duplicate id (E11000)",
		},
		{
			name:     "validation on a field",
			err:      NewValidationError("author", "Author name must be at least 2 characters long"),
			sentinel: ErrValidation,
			is:       IsValidation,
			message:  "validation failed for author: Author name must be at least 2 characters long",
		},
		{
			name:     "validation without a field",
			err:      NewValidationError("", "request body is not valid JSON"),
			sentinel: ErrValidation,
			is:       IsValidation,
			message:  "validation failed: request body is not valid JSON",
		},
		{
			name:     "invalid id",
			err:      NewInvalidIDError("quote", "xyz"),
			sentinel: ErrInvalidID,
			is:       IsInvalidID,
			message:  `invalid quote id "xyz"`,
		},
		{
			name:     "unavailable with reason",
			err:      NewUnavailableError("mongo-store", "server selection timeout"),
			sentinel: ErrUnavailable,
			is:       IsUnavailable,
			message:  `service "mongo-store" unavailable: server selection timeout`,
		},
		{
			name:     "unavailable without reason",
			err:      NewUnavailableError("postgres-store", ""),
			sentinel: ErrUnavailable,
			is:       IsUnavailable,
			message:  `service "postgres-store" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.True(t, tt.is(tt.err))

			for _, s := range sentinels {
				assert.Equal(t, s == tt.sentinel, errors.Is(tt.err, s), "errors.Is(%v)", s)
			}

			wrapped := fmt.Errorf("creating quote: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.True(t, tt.is(wrapped))
		})
	}
}

func TestValidationError_KeepsValue(t *testing.T) {
	err := NewValidationErrorWithValue("category", "Invalid category", "humor")

	var ve *ValidationError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &ve)
	assert.Equal(t, "category", ve.Field)
	assert.Equal(t, "humor", ve.Value)
}

func TestIsHelpers_RejectPlainErrors(t *testing.T) {
	plain := errors.New("disk on fire")

	assert.False(t, IsNotFound(plain))
	assert.False(t, IsConflict(plain))
	assert.False(t, IsValidation(plain))
	assert.False(t, IsInvalidID(plain))
	assert.False(t, IsUnavailable(plain))
	assert.False(t, IsNotFound(nil))
}
