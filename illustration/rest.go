package illustration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/httpclient"
	"github.com/kbukum/gallery/logger"
)

var _ Repository = (*RESTRepository)(nil)

const restColumns = "id,file_path,title,description,created_at"

// RESTRepository reads the table through PostgREST, asking for an exact count
// with each page.
type RESTRepository struct {
	client *httpclient.Client
	table  string
	log    *logger.Logger
}

// NewRESTRepository creates a repository against cfg.URL. The key is sent
// both as the apikey header and as a bearer token.
func NewRESTRepository(cfg RESTConfig, table string, log *logger.Logger) (*RESTRepository, error) {
	if log == nil {
		log = logger.NewNop()
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL:        strings.TrimRight(cfg.URL, "/"),
		Timeout:        cfg.Timeout,
		Headers:        map[string]string{"Accept": "application/json"},
		Auth:           httpclient.SupabaseKey(cfg.Key),
		Retry:          httpclient.DefaultRetryConfig(),
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("listing-rest"),
	})
	if err != nil {
		return nil, fmt.Errorf("listing rest client: %w", err)
	}
	return &RESTRepository{client: client, table: table, log: log.WithComponent("illustration.rest")}, nil
}

// restRow mirrors the table; nullable text columns arrive as null.
type restRow struct {
	ID          json.RawMessage `json:"id"`
	FilePath    *string         `json:"file_path"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	CreatedAt   *restTime       `json:"created_at"`
}

func (r restRow) illustration() gallery.Illustration {
	it := gallery.Illustration{
		ID:          rawID(r.ID),
		FilePath:    deref(r.FilePath),
		Title:       deref(r.Title),
		Description: deref(r.Description),
	}
	if r.CreatedAt != nil {
		t := r.CreatedAt.Time
		it.CreatedAt = &t
	}
	return it
}

// List requests one page with a Range header and reads the total from
// Content-Range.
func (r *RESTRepository) List(ctx context.Context, q Query) ([]gallery.Illustration, int, error) {
	order := q.SortBy + ".desc"
	if q.Ascending() {
		order = q.SortBy + ".asc"
	}
	resp, err := httpclient.DoJSON[[]restRow](ctx, r.client, httpclient.Request{
		Method: http.MethodGet,
		Path:   r.table,
		Query:  map[string]string{"select": restColumns, "order": order},
		Headers: map[string]string{
			"Range-Unit": "items",
			"Range":      fmt.Sprintf("%d-%d", q.Offset(), q.End()),
			"Prefer":     "count=exact",
		},
	})
	if err != nil {
		var httpErr *httpclient.Error
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusRequestedRangeNotSatisfiable {
			// Past the last row: the page is empty but the count still matters.
			count, cerr := r.count(ctx)
			if cerr != nil {
				return nil, 0, cerr
			}
			return []gallery.Illustration{}, count, nil
		}
		r.log.Error("list request failed", logger.Fields(logger.FieldPage, q.Page, logger.FieldError, err.Error()))
		return nil, 0, restError(err)
	}

	count, err := parseContentRange(resp.Headers["Content-Range"])
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	items := make([]gallery.Illustration, 0, len(resp.Data))
	for _, row := range resp.Data {
		items = append(items, row.illustration())
	}
	return items, count, nil
}

// Get filters on id and returns the first row.
func (r *RESTRepository) Get(ctx context.Context, id string) (*gallery.Illustration, error) {
	resp, err := httpclient.DoJSON[[]restRow](ctx, r.client, httpclient.Request{
		Method: http.MethodGet,
		Path:   r.table,
		Query:  map[string]string{"select": restColumns, "id": "eq." + id, "limit": "1"},
	})
	if err != nil {
		r.log.Error("get request failed", logger.Fields(logger.FieldIllustrationID, id, logger.FieldError, err.Error()))
		return nil, restError(err)
	}
	if len(resp.Data) == 0 {
		return nil, apperrors.NotFound("illustration", id)
	}
	it := resp.Data[0].illustration()
	return &it, nil
}

func (r *RESTRepository) count(ctx context.Context) (int, error) {
	resp, err := r.client.Do(ctx, httpclient.Request{
		Method:  http.MethodHead,
		Path:    r.table,
		Query:   map[string]string{"select": "id"},
		Headers: map[string]string{"Prefer": "count=exact"},
	})
	if err != nil {
		return 0, restError(err)
	}
	count, err := parseContentRange(resp.Headers["Content-Range"])
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

// Ping issues a count request.
func (r *RESTRepository) Ping(ctx context.Context) error {
	_, err := r.count(ctx)
	return err
}

// parseContentRange reads the total from "0-9/42" or "*/42".
func parseContentRange(v string) (int, error) {
	_, total, ok := strings.Cut(v, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("content-range %q carries no exact count", v)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("content-range %q: %w", v, err)
	}
	return n, nil
}

// restError keeps the remote message so the listing API can echo it.
func restError(err error) error {
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(httpErr.Body, &body) == nil && body.Message != "" {
			return apperrors.DatabaseError(errors.New(body.Message))
		}
	}
	return apperrors.DatabaseError(err)
}

func rawID(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
