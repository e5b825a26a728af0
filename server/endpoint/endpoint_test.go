package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/gallery/component"
)

func init() { gin.SetMode(gin.TestMode) }

func TestHealthAliases(t *testing.T) {
	r := gin.New()
	RegisterHealth(r, "gallery", nil)

	for _, p := range HealthPaths {
		t.Run(p, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["status"] != "healthy" || body["service"] != "gallery" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestHealthUnhealthyComponent(t *testing.T) {
	r := gin.New()
	RegisterHealth(r, "gallery", func(context.Context) []component.Health {
		return []component.Health{
			{Name: "storage", Status: component.StatusDegraded},
			{Name: "listing", Status: component.StatusUnhealthy, Message: "down"},
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHealthDegraded(t *testing.T) {
	r := gin.New()
	RegisterHealth(r, "gallery", func(context.Context) []component.Health {
		return []component.Health{{Name: "redis", Status: component.StatusDegraded}}
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"degraded"`) {
		t.Errorf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "gallery_test_total", Help: "t"})
	reg.MustRegister(c)
	c.Inc()

	r := gin.New()
	r.GET("/metrics", Metrics(reg))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "gallery_test_total 1") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestVersion(t *testing.T) {
	r := gin.New()
	r.GET("/version", Version("gallery", time.Now().Add(-90*time.Second)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "gallery" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if up, _ := body["uptime"].(string); !strings.HasPrefix(up, "1m3") {
		t.Errorf("uptime = %v", body["uptime"])
	}
}
