package errors

import stderrors "errors"

// Body is the JSON envelope written for a failed request:
//
//	{"error": {"code": "NOT_FOUND", "message": "...", "retryable": false}}
type Body struct {
	Error struct {
		Code      ErrorCode      `json:"code"`
		Message   string         `json:"message"`
		Retryable bool           `json:"retryable"`
		Details   map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func (e *AppError) ToResponse() Body {
	var b Body
	b.Error.Code = e.Code
	b.Error.Message = e.Message
	b.Error.Retryable = e.Retryable
	b.Error.Details = e.Details
	return b
}

// AsAppError finds an *AppError anywhere in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == ErrCodeNotFound
}
