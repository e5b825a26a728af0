package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/gallery/errors"
)

// FieldError names one rejected input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Checker accumulates field errors across several request parameters so a
// caller can report all of them at once.
type Checker struct {
	fields []FieldError
}

func New() *Checker {
	return &Checker{}
}

// Fail records a field error.
func (c *Checker) Fail(field, format string, args ...any) *Checker {
	c.fields = append(c.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	return c
}

func (c *Checker) Failed() bool { return len(c.fields) > 0 }

func (c *Checker) Fields() []FieldError { return c.fields }

// Int parses raw as a base-10 integer of at least minVal. An empty raw yields
// def without a check; anything else that fails is recorded and returns def.
func (c *Checker) Int(field, raw string, def, minVal int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.Fail(field, "must be a number")
		return def
	}
	if n < minVal {
		c.Fail(field, "must be at least %d", minVal)
	}
	return n
}

// OneOf rejects values outside allowed.
func (c *Checker) OneOf(field, value string, allowed ...string) *Checker {
	if !slices.Contains(allowed, value) {
		c.Fail(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
	return c
}

// Err returns nil, or a VALIDATION_ERROR listing every field in order. The
// fields are repeated under Details["fields"].
func (c *Checker) Err() *errors.AppError {
	if !c.Failed() {
		return nil
	}
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return errors.Validation(strings.Join(parts, "; ")).
		WithDetail("fields", c.fields)
}
