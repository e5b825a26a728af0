package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gallery/bootstrap"
	"github.com/kbukum/gallery/component"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
	"github.com/kbukum/gallery/testutil"
)

func init() { gin.SetMode(gin.TestMode) }

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, serviceName, cfg.Name)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "X-API-Key", cfg.API.Header)
	assert.Equal(t, "http://localhost:8080", cfg.Remote.URL)
	assert.Equal(t, gallery.DefaultPageSize, cfg.Gallery.PageSize)
	assert.Equal(t, illustration.BackendREST, cfg.Listing.Backend)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Storage.Provider = "ftp"
	cfg.Site.URL = "example.com"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
	assert.Contains(t, err.Error(), "site.url")
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: sketchbook
storage:
  provider: memory
gallery:
  sign_expiry: 2h
  page_size: 12
site:
  url: https://sketch.example
`), 0o600))
	t.Setenv("API_KEY", "from-env")
	t.Setenv("GALLERY_CACHE_TTL", "90m")

	cfg, err := loadConfig(file)
	require.NoError(t, err)
	cfg.ApplyDefaults()

	assert.Equal(t, "sketchbook", cfg.Name)
	assert.Equal(t, storage.ProviderMemory, cfg.Storage.Provider)
	assert.Equal(t, 2*time.Hour, cfg.Gallery.SignExpiry)
	assert.Equal(t, 90*time.Minute, cfg.Gallery.CacheTTL)
	assert.Equal(t, 12, cfg.Gallery.PageSize)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, "from-env", cfg.Remote.Key)
	assert.Nil(t, cfg.providerConfig())
}

func TestServeRequiresListingBackend(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Provider = storage.ProviderMemory

	_, _, err := newServeApp(cfg, bootstrap.WithLogger(logger.NewNop()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing.rest.url")
}

// fakePostgREST answers every table read with rows, honoring Range.
func fakePostgREST(t *testing.T, rows []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if id, ok := strings.CutPrefix(r.URL.Query().Get("id"), "eq."); ok {
			for _, row := range rows {
				if strings.Contains(row, `"id":"`+id+`"`) {
					fmt.Fprintf(w, "[%s]", row)
					return
				}
			}
			fmt.Fprint(w, "[]")
			return
		}
		w.Header().Set("Content-Range", fmt.Sprintf("0-%d/%d", len(rows)-1, len(rows)))
		fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServeWiring(t *testing.T) {
	rest := fakePostgREST(t, []string{
		`{"id":"a1","file_path":"illustrations/fox.png","title":"Fox","created_at":"2026-01-02T00:00:00Z"}`,
	})

	cfg := &Config{}
	cfg.Storage.Provider = storage.ProviderMemory
	cfg.Listing.REST.URL = rest.URL
	cfg.Listing.REST.Key = "anon"
	cfg.API.Key = "secret"
	cfg.Observability.MetricsEnabled = true

	app, srv, err := newServeApp(cfg, bootstrap.WithLogger(logger.NewNop()))
	require.NoError(t, err)

	// Everything but the HTTP server, which would bind a port.
	var started []component.Component
	for _, name := range []string{"storage", "redis", "listing", "site"} {
		c := app.Components.Get(name)
		require.NotNil(t, c, name)
		started = append(started, c)
	}
	testutil.Start(t, started...)

	get := func(target string, header http.Header) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		for k, v := range header {
			req.Header[k] = v
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w
	}

	w := get("/api/illustrations", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get("/api/illustrations", http.Header{"X-Api-Key": {"secret"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCount":1`)
	assert.Contains(t, w.Body.String(), `"title":"Fox"`)

	w = get("/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fox")
	assert.Contains(t, w.Body.String(), gallery.ExhaustedMessage)

	w = get("/illustrations/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, get("/illustrations/zz", nil).Code)

	assert.Equal(t, http.StatusOK, get("/version", nil).Code)
	w = get("/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gallery_listing_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")

	// The HTTP server was never started, so it reports unhealthy.
	w = get("/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"site"`)
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("storage:\n  provider: memory\nlogging:\n  level: error\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resolve", "--config", file, "", "illustrations/missing.png"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "\t"+gallery.DefaultPlaceholder, lines[0])
	assert.Equal(t, "illustrations/missing.png\t"+gallery.DefaultPlaceholder, lines[1])
}

func TestBrowser(t *testing.T) {
	var all []gallery.Illustration
	for i := range 12 {
		all = append(all, gallery.Illustration{ID: fmt.Sprintf("id-%02d", i+1), Title: fmt.Sprintf("Art %02d", i+1)})
	}
	lister := gallery.ListerFunc(func(_ context.Context, req gallery.PageRequest) (*gallery.ListingPage, error) {
		start := min((req.Page-1)*req.Limit, len(all))
		end := min(start+req.Limit, len(all))
		pages := (len(all) + req.Limit - 1) / req.Limit
		return &gallery.ListingPage{Items: all[start:end], TotalCount: len(all), CurrentPage: req.Page, TotalPages: pages}, nil
	})

	cfg := gallery.DefaultConfig()
	cfg.Debounce = time.Millisecond
	var out bytes.Buffer
	b := &browser{
		out:  &out,
		view: gallery.NewView(lister, placeholderResolver(cfg.Placeholder), cfg),
		cfg:  cfg,
	}
	require.NoError(t, b.run(context.Background(), 0))

	text := out.String()
	assert.Contains(t, text, "page 1\n")
	assert.Contains(t, text, "page 2\n")
	assert.NotContains(t, text, "page 3\n")
	assert.Equal(t, 12, strings.Count(text, "id-"))
	assert.True(t, strings.HasSuffix(text, gallery.ExhaustedMessage+"\n"))
}
