package storage_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/httpclient"
	"github.com/kbukum/gallery/storage"
	"github.com/kbukum/gallery/storage/memory"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   apperrors.ErrorCode
		status int
	}{
		{"not found sentinel", fmt.Errorf("%w: a.png", storage.ErrNotFound), apperrors.ErrCodeNotFound, http.StatusNotFound},
		{"http 404", httpclient.ClassifyStatusCode(404, nil), apperrors.ErrCodeNotFound, http.StatusNotFound},
		{"http 401", httpclient.ClassifyStatusCode(401, nil), apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"deadline", context.DeadlineExceeded, apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"supabase body", fmt.Errorf(`{"error":"not_found"}`), apperrors.ErrCodeNotFound, http.StatusNotFound},
		{"other", fmt.Errorf("boom"), apperrors.ErrCodeStorage, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.Translate("download", "a.png", tt.err)
			if got.Code != tt.code || got.HTTPStatus != tt.status {
				t.Errorf("got %s/%d, want %s/%d", got.Code, got.HTTPStatus, tt.code, tt.status)
			}
		})
	}
	if storage.Translate("x", "y", nil) != nil {
		t.Error("nil error should translate to nil")
	}
}

func TestComponentLifecycle(t *testing.T) {
	c := storage.NewComponent(storage.Config{Provider: storage.ProviderMemory, Enabled: true}, nil, nil)
	ctx := context.Background()
	if h := c.Health(ctx); h.Status != "unhealthy" {
		t.Errorf("health before start = %s", h.Status)
	}
	if err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Storage().(*memory.Storage); !ok {
		t.Errorf("Storage() = %T", c.Storage())
	}
	if h := c.Health(ctx); h.Status != "healthy" {
		t.Errorf("health = %+v", h)
	}
	if d := c.Describe(); d.Details != "provider=memory bucket=uploads" {
		t.Errorf("Describe = %+v", d)
	}
	_ = c.Stop(ctx)
	if c.Storage() != nil {
		t.Error("storage not released")
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := storage.New(storage.Config{Provider: "ftp"}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
