package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	ErrCodeAuth
	ErrCodeNotFound
	ErrCodeRateLimit
	ErrCodeValidation
	ErrCodeServer
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// StatusCode is 0 for transport-level failures.
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewTimeoutError wraps a deadline or cancellation failure.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError wraps a transport failure.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode converts a non-2xx status into an *Error. It returns nil
// for 2xx. The response body, when short, becomes the message so remote error
// text reaches logs.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	e := &Error{StatusCode: status, Body: body, Message: fmt.Sprintf("HTTP %d", status)}
	if len(body) > 0 && len(body) <= 512 {
		e.Message = string(body)
	}
	switch {
	case status == 401 || status == 403:
		e.Code = ErrCodeAuth
	case status == 404:
		e.Code = ErrCodeNotFound
	case status == 429:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case status >= 400 && status < 500:
		e.Code = ErrCodeValidation
	default:
		e.Code, e.Retryable = ErrCodeServer, status >= 500
	}
	return e
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout reports a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsAuth reports a 401/403.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsServerError reports a 5xx.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
