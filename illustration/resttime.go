package illustration

import (
	"strings"
	"time"
)

// restTime parses the timestamp layouts PostgREST emits, with or without a
// zone offset.
type restTime struct {
	time.Time
}

var restTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
}

func (t *restTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	var lastErr error
	for _, layout := range restTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
