package illustration_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/illustration"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/server"
	"github.com/kbukum/gallery/server/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

const testKey = "s3cret"

// memRepo serves rows from a slice in their stored order.
type memRepo struct {
	rows    []gallery.Illustration
	err     error
	queries []illustration.Query
}

func (m *memRepo) List(_ context.Context, q illustration.Query) ([]gallery.Illustration, int, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, 0, m.err
	}
	start := min(q.Offset(), len(m.rows))
	end := min(start+q.Limit, len(m.rows))
	return m.rows[start:end], len(m.rows), nil
}

func (m *memRepo) Get(_ context.Context, id string) (*gallery.Illustration, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, apperrors.NotFound("illustration", id)
}

func rows(n int) []gallery.Illustration {
	out := make([]gallery.Illustration, n)
	for i := range out {
		out[i] = gallery.Illustration{
			ID:       "id-" + string(rune('a'+i)),
			FilePath: "illustrations/" + string(rune('a'+i)) + ".png",
			Title:    "Title " + string(rune('A'+i)),
		}
	}
	return out
}

func newRouter(repo illustration.Repository, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	h := illustration.NewHandler(illustration.NewService(repo, nil), nil, metrics)
	var cfg server.Config
	cfg.ApplyDefaults()
	h.Register(r, middleware.APIKeyConfig{Key: testKey}, cfg.CORS)
	return r
}

func do(r http.Handler, method, target string, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if key != "" {
		req.Header.Set(middleware.DefaultAPIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListing_RequiresKey(t *testing.T) {
	r := newRouter(&memRepo{rows: rows(3)}, nil)
	for _, key := range []string{"", "wrong"} {
		w := do(r, http.MethodGet, "/api/illustrations", key)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())

		w = do(r, http.MethodGet, "/api/illustrations/id-a", key)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestListing_Page(t *testing.T) {
	repo := &memRepo{rows: rows(12)}
	r := newRouter(repo, nil)

	w := do(r, http.MethodGet, "/api/illustrations?page=2&limit=9&sortBy=created_at&sortDirection=desc", testKey)
	require.Equal(t, http.StatusOK, w.Code)

	var page gallery.ListingPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "id-j", page.Items[0].ID)

	assert.Equal(t, illustration.Query{Page: 2, Limit: 9, SortBy: "created_at", SortDirection: "desc"}, repo.queries[0])
}

func TestListing_Defaults(t *testing.T) {
	repo := &memRepo{rows: rows(25)}
	r := newRouter(repo, nil)

	w := do(r, http.MethodGet, "/api/illustrations", testKey)
	require.Equal(t, http.StatusOK, w.Code)

	var page gallery.ListingPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListing_EmptyTable(t *testing.T) {
	r := newRouter(&memRepo{}, nil)
	w := do(r, http.MethodGet, "/api/illustrations", testKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"totalCount":0,"currentPage":1,"totalPages":0}`, w.Body.String())
}

func TestListing_BadQuery(t *testing.T) {
	r := newRouter(&memRepo{rows: rows(3)}, nil)
	for _, target := range []string{
		"/api/illustrations?page=abc",
		"/api/illustrations?page=0",
		"/api/illustrations?limit=-1",
		"/api/illustrations?sortBy=secret_column",
	} {
		w := do(r, http.MethodGet, target, testKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), `"error"`, target)
	}
}

func TestListing_RepositoryFailure(t *testing.T) {
	repo := &memRepo{err: apperrors.DatabaseError(errors.New("relation \"image_uploads\" does not exist"))}
	r := newRouter(repo, nil)

	w := do(r, http.MethodGet, "/api/illustrations", testKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"relation \"image_uploads\" does not exist"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/illustrations/id-a", testKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestItem(t *testing.T) {
	r := newRouter(&memRepo{rows: rows(3)}, nil)

	w := do(r, http.MethodGet, "/api/illustrations/id-b", testKey)
	require.Equal(t, http.StatusOK, w.Code)
	var it gallery.Illustration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	assert.Equal(t, "Title B", it.Title)

	w = do(r, http.MethodGet, "/api/illustrations/nope", testKey)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"illustration not found"}`, w.Body.String())
}

func TestListing_OptionsAndHead(t *testing.T) {
	r := newRouter(&memRepo{}, nil)

	w := do(r, http.MethodOptions, "/api/illustrations", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"GET, HEAD"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,DELETE,PATCH,POST,PUT", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodHead, "/api/illustrations", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HEAD request received")
}

func TestListing_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(&memRepo{rows: rows(3)}, observability.NewMetrics(reg))

	do(r, http.MethodGet, "/api/illustrations", testKey)
	do(r, http.MethodGet, "/api/illustrations", "")
	do(r, http.MethodGet, "/api/illustrations/missing", testKey)

	want := `
# HELP gallery_listing_requests_total Listing API requests by route and HTTP status.
# TYPE gallery_listing_requests_total counter
gallery_listing_requests_total{route="/api/illustrations",status="200"} 1
gallery_listing_requests_total{route="/api/illustrations",status="401"} 1
gallery_listing_requests_total{route="/api/illustrations/:id",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "gallery_listing_requests_total"))
}
