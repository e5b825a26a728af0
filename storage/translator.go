package storage

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/httpclient"
)

// Translate converts a backend error to an AppError for the given operation.
// Missing objects map to NOT_FOUND, auth failures to UNAUTHORIZED, deadlines
// to TIMEOUT, and everything else to STORAGE_ERROR.
func Translate(op, path string, err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if ae, ok := apperrors.AsAppError(err); ok {
		return ae
	}

	switch {
	case errors.Is(err, ErrNotFound) || httpclient.IsNotFound(err):
		return apperrors.NotFound("object", path).WithCause(err)
	case httpclient.IsAuth(err):
		return apperrors.Unauthorized("storage credentials rejected").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded) || httpclient.IsTimeout(err):
		return apperrors.Timeout("storage " + op).WithCause(err)
	}

	// Supabase reports some failures inside a 400 body.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not_found") || strings.Contains(msg, "object not found"):
		return apperrors.NotFound("object", path).WithCause(err)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		return apperrors.RateLimited().WithCause(err)
	}
	return apperrors.StorageError(op, err)
}
