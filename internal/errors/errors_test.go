package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	err := NewParsingError("Excel file appears to be empty", nil)
	assert.Equal(t, "[PARSING] Excel file appears to be empty", err.Error())

	wrapped := NewParsingError("Failed to read Excel file", errors.New("zip: not a valid zip file"))
	assert.Equal(t, "[PARSING] Failed to read Excel file: zip: not a valid zip file", wrapped.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", NewStorageError("write failed", cause))

	assert.ErrorIs(t, err, cause)

	typ, ok := TypeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeStorage, typ)
}

func TestTypeOfPlainError(t *testing.T) {
	_, ok := TypeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithContext(t *testing.T) {
	err := NewValidationError("bad file", nil).
		WithContext("extension", ".csv").
		WithContext("size", int64(42))

	assert.Equal(t, ".csv", err.Context["extension"])
	assert.Equal(t, int64(42), err.Context["size"])
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "No file provided", UserMessage(NewValidationError("No file provided", errors.New("internal detail"))))
	assert.Equal(t, "Internal server error", UserMessage(errors.New("sql: connection refused")))
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"parsing", NewParsingError("bad workbook", nil), http.StatusUnprocessableEntity, "PARSE_FAILED"},
		{"validation", NewValidationError("bad file", nil), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not found", NewAppError(ErrTypeNotFound, "missing", nil), http.StatusNotFound, "NOT_FOUND"},
		{"storage", NewStorageError("disk", nil), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"already api", ErrMissingFile, http.StatusBadRequest, "MISSING_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.ErrorCode)
		})
	}
}

func TestToAPIErrorKeepsParseMessage(t *testing.T) {
	apiErr := ToAPIError(NewParsingError("Excel file appears to be empty", nil))
	assert.Equal(t, "Excel file appears to be empty", apiErr.Message)
}

func TestToAPIErrorWrappedAppError(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewParsingError("bad workbook", nil))
	apiErr := ToAPIError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}
