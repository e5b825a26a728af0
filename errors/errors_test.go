package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeTable(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		status    int
		retryable bool
	}{
		{ErrCodeStorage, http.StatusBadGateway, true},
		{ErrCodeDatabase, http.StatusInternalServerError, true},
		{ErrCodeNotFound, http.StatusNotFound, false},
		{ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			e := New(tt.code, "x")
			assert.Equal(t, tt.status, e.HTTPStatus)
			assert.Equal(t, tt.retryable, e.Retryable)
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: illustration not found", NotFound("illustration", "42").Error())

	cause := fmt.Errorf("boom")
	e := StorageError("sign", cause)
	assert.Equal(t, "STORAGE_ERROR: storage sign failed (cause: boom)", e.Error())
	assert.True(t, stderrors.Is(e, cause))
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Unauthorized(""))

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Unauthorized", got.Message)
	assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)

	_, ok = AsAppError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", NotFound("illustration", "x"))))
	assert.False(t, IsNotFound(Internal(nil)))
	assert.False(t, IsNotFound(nil))
}

func TestDatabaseErrorUsesCauseMessage(t *testing.T) {
	e := DatabaseError(fmt.Errorf("relation \"image_uploads\" does not exist"))
	assert.Equal(t, `relation "image_uploads" does not exist`, e.Message)
	assert.Equal(t, "A database error occurred.", DatabaseError(nil).Message)
}

func TestToResponse(t *testing.T) {
	resp := InvalidInput("page", "must be a positive integer").ToResponse()
	assert.Equal(t, ErrCodeInvalidInput, resp.Error.Code)
	assert.Equal(t, "Invalid input: must be a positive integer", resp.Error.Message)
	assert.Equal(t, "page", resp.Error.Details["field"])

	assert.Nil(t, RateLimited().ToResponse().Error.Details)
}
