package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/logger"
)

// Recovery turns a handler panic into a 500 with the standard error
// envelope. The stack goes to the log, tagged with the request ID.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.WithContext(c.Request.Context()).Error("handler panicked", logger.Fields(
				logger.FieldError, fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"route", c.FullPath(),
				"method", c.Request.Method,
			))
			appErr := apperrors.Internal(fmt.Errorf("panic: %v", rec))
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		}()
		c.Next()
	}
}
