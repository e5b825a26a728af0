package illustration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/httpclient"
	"github.com/kbukum/gallery/server/middleware"
)

var _ gallery.Lister = (*Client)(nil)

// Client reads a remote listing API.
type Client struct {
	http *httpclient.Client
}

// NewClient creates a client for the API at baseURL, sending the shared
// secret in auth.Header.
func NewClient(baseURL string, auth middleware.APIKeyConfig, cfg httpclient.Config) (*Client, error) {
	if auth.Header == "" {
		auth.Header = middleware.DefaultAPIKeyHeader
	}
	cfg.BaseURL = baseURL
	cfg.Auth = httpclient.APIKey(auth.Header, auth.Key)
	if cfg.Retry == nil {
		cfg.Retry = httpclient.DefaultRetryConfig()
	}
	c, err := httpclient.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("listing client: %w", err)
	}
	return &Client{http: c}, nil
}

// List fetches one page. Any non-2xx answer becomes "API error: <status>".
func (c *Client) List(ctx context.Context, req gallery.PageRequest) (*gallery.ListingPage, error) {
	query := map[string]string{}
	if req.Page > 0 {
		query["page"] = strconv.Itoa(req.Page)
	}
	if req.Limit > 0 {
		query["limit"] = strconv.Itoa(req.Limit)
	}
	if req.SortBy != "" {
		query["sortBy"] = req.SortBy
	}
	if req.SortDirection != "" {
		query["sortDirection"] = req.SortDirection
	}

	resp, err := httpclient.DoJSON[gallery.ListingPage](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   routeList,
		Query:  query,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &resp.Data, nil
}

// Get fetches one illustration.
func (c *Client) Get(ctx context.Context, id string) (*gallery.Illustration, error) {
	resp, err := httpclient.DoJSON[gallery.Illustration](ctx, c.http, httpclient.Request{
		Method: http.MethodGet,
		Path:   routeList + "/" + id,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &resp.Data, nil
}

func apiError(err error) error {
	var e *httpclient.Error
	if errors.As(err, &e) && e.StatusCode > 0 {
		return fmt.Errorf("API error: %d", e.StatusCode)
	}
	return err
}
