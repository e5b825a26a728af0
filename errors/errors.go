package errors

import "fmt"

// AppError is a failure with a client-facing code and message. Cause is kept
// for logs and never serialized.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// New builds an error whose status and retryability follow code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Retryable:  code.Retryable(),
		HTTPStatus: code.Status(),
	}
}

// NotFound reports a missing illustration or object. id may be empty.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, resource+" not found").WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// InvalidInput rejects a single request parameter.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries a pre-formatted list of field failures.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Unauthorized"
	}
	return New(ErrCodeUnauthorized, reason)
}

func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "The request took too long. Please try again.").WithDetail("operation", operation)
}

func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Too many requests. Please wait a moment and try again.")
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// DatabaseError wraps a failed listing query. The listing surface reports the
// backend's own message, so it is used verbatim.
func DatabaseError(cause error) *AppError {
	msg := "A database error occurred."
	if cause != nil {
		msg = cause.Error()
	}
	return New(ErrCodeDatabase, msg).WithCause(cause)
}

// StorageError wraps a failed object storage call.
func StorageError(op string, cause error) *AppError {
	return New(ErrCodeStorage, "storage "+op+" failed").WithDetail("operation", op).WithCause(cause)
}
