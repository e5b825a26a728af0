package validation

import (
	"strings"
	"testing"

	apperrors "github.com/kbukum/gallery/errors"
)

type siteConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	URL      string `mapstructure:"url" validate:"required,url"`
	PageSize int    `mapstructure:"page_size" validate:"min=1,max=100"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name     string
		in       siteConfig
		wantErr  bool
		contains []string
	}{
		{"valid", siteConfig{Name: "Gallery", URL: "https://example.com", PageSize: 9}, false, nil},
		{"missing name", siteConfig{URL: "https://example.com", PageSize: 9}, true, []string{"name: is required"}},
		{"bad url and size", siteConfig{Name: "g", URL: "nope", PageSize: 0}, true, []string{"url: must be a valid URL", "page_size: must be at least 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			for _, c := range tt.contains {
				if !strings.Contains(appErr.Message, c) {
					t.Errorf("message %q missing %q", appErr.Message, c)
				}
			}
		})
	}
}

func TestCheckerCollectsEveryField(t *testing.T) {
	c := New()
	page := c.Int("page", "0", 1, 1)
	limit := c.Int("limit", "ten", 10, 1)
	c.OneOf("sortBy", "name", "created_at", "title", "id")
	c.OneOf("sortDirection", "asc", "asc", "desc")

	if page != 0 || limit != 10 {
		t.Errorf("page, limit = %d, %d", page, limit)
	}
	if len(c.Fields()) != 3 {
		t.Fatalf("fields = %+v, want 3", c.Fields())
	}
	appErr := c.Err()
	if appErr == nil || appErr.HTTPStatus != 400 {
		t.Fatalf("Err() = %+v", appErr)
	}
	want := "page: must be at least 1; limit: must be a number; sortBy: must be one of: created_at, title, id"
	if appErr.Message != want {
		t.Errorf("message = %q", appErr.Message)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 3 {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestCheckerClean(t *testing.T) {
	c := New()
	if got := c.Int("page", "", 4, 1); got != 4 {
		t.Errorf("default = %d", got)
	}
	if got := c.Int("page", " 7 ", 1, 1); got != 7 {
		t.Errorf("trimmed = %d", got)
	}
	if c.Failed() || c.Err() != nil {
		t.Errorf("unexpected fields %+v", c.Fields())
	}
}
