package errors

import "net/http"

// ErrorCode is the stable machine-readable code sent to clients.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
	ErrCodeStorage      ErrorCode = "STORAGE_ERROR"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrCodeNotFound:     {http.StatusNotFound, false},
	ErrCodeInvalidInput: {http.StatusBadRequest, false},
	ErrCodeValidation:   {http.StatusBadRequest, false},
	ErrCodeUnauthorized: {http.StatusUnauthorized, false},
	ErrCodeTimeout:      {http.StatusGatewayTimeout, true},
	ErrCodeRateLimited:  {http.StatusTooManyRequests, true},
	ErrCodeInternal:     {http.StatusInternalServerError, false},
	ErrCodeDatabase:     {http.StatusInternalServerError, true},
	ErrCodeStorage:      {http.StatusBadGateway, true},
}

// Status is the HTTP status a code maps to. Unknown codes are 500.
func (c ErrorCode) Status() int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether a caller may repeat the failed operation.
func (c ErrorCode) Retryable() bool { return codes[c].retryable }
