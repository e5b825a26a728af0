package logger

import "time"

// Standard field keys for structured logging.
const (
	FieldComponent      = "component"
	FieldRequestID      = "request_id"
	FieldTraceID        = "trace_id"
	FieldOperation      = "operation"
	FieldStatus         = "status"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
	FieldKey            = "key"
	FieldPath           = "path"
	FieldBucket         = "bucket"
	FieldPage           = "page"
	FieldIllustrationID = "illustration_id"
)

// Fields builds a field map from alternating key-value pairs.
//
//	log.Info("page loaded", logger.Fields(logger.FieldPage, 2, "items", 9))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
