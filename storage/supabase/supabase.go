// Package supabase implements storage.Storage on the Supabase Storage REST
// API (/storage/v1).
package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/gallery/httpclient"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderSupabase, func(cfg storage.Config, providerCfg any, log *logger.Logger) (storage.Storage, error) {
		pc, ok := providerCfg.(*Config)
		if !ok || pc == nil {
			return nil, fmt.Errorf("supabase: expected *supabase.Config, got %T", providerCfg)
		}
		c := *pc
		if c.Bucket == "" {
			c.Bucket = cfg.Bucket
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewStorage(c, cfg.Timeout, log)
	})
}

const defaultListLimit = 100

// Storage implements storage.Storage using the Supabase Storage REST API.
type Storage struct {
	baseURL string
	bucket  string
	client  *httpclient.Client
	log     *logger.Logger
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage creates a new Supabase storage client. Requests are retried on
// transient failures and guarded by a circuit breaker.
func NewStorage(cfg Config, timeout time.Duration, log *logger.Logger) (*Storage, error) {
	if log == nil {
		log = logger.NewNop()
	}
	base := strings.TrimRight(cfg.URL, "/") + "/storage/v1"
	client, err := httpclient.New(httpclient.Config{
		BaseURL:        base,
		Timeout:        timeout,
		Auth:           httpclient.SupabaseKey(cfg.SecretKey),
		Retry:          httpclient.DefaultRetryConfig(),
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("supabase-storage"),
	})
	if err != nil {
		return nil, fmt.Errorf("supabase: create client: %w", err)
	}
	return &Storage{
		baseURL: base,
		bucket:  cfg.Bucket,
		client:  client,
		log:     log.WithComponent("storage.supabase"),
	}, nil
}

func (s *Storage) objectPath(kind, path string) string {
	p := "object/"
	if kind != "" {
		p += kind + "/"
	}
	return p + s.bucket + "/" + escapePath(path)
}

// Download returns a reader for the object at the given path.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	resp, err := s.client.Stream(ctx, httpclient.Request{Path: s.objectPath("", path)})
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("storage: supabase download: %w", err)
	}
	return resp.Body, nil
}

// Exists checks whether an object exists.
func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.Do(ctx, httpclient.Request{
		Method: http.MethodHead,
		Path:   s.objectPath("", path),
	})
	switch {
	case err == nil:
		return true, nil
	case httpclient.IsNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("storage: supabase exists: %w", err)
	}
}

// URL returns the public URL for the object.
func (s *Storage) URL(_ context.Context, path string) (string, error) {
	return s.baseURL + "/" + s.objectPath("public", path), nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Search string `json:"search,omitempty"`
}

type listItem struct {
	Name     string `json:"name"`
	Metadata *struct {
		Size     int64  `json:"size"`
		MimeType string `json:"mimetype"`
	} `json:"metadata"`
	UpdatedAt string `json:"updated_at"`
}

// List returns objects directly under prefix whose names contain
// opts.Search. Folder placeholders (entries without metadata) are included
// with zero size.
func (s *Storage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.FileInfo, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	resp, err := httpclient.DoJSON[[]listItem](ctx, s.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   "object/list/" + s.bucket,
		Body: listRequest{
			Prefix: prefix,
			Limit:  limit,
			Offset: opts.Offset,
			Search: opts.Search,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("storage: supabase list: %w", err)
	}

	folder := strings.TrimSuffix(prefix, "/")
	files := make([]storage.FileInfo, 0, len(resp.Data))
	for _, item := range resp.Data {
		fi := storage.FileInfo{Path: item.Name}
		if folder != "" {
			fi.Path = folder + "/" + item.Name
		}
		if item.Metadata != nil {
			fi.Size = item.Metadata.Size
			fi.ContentType = item.Metadata.MimeType
		}
		if item.UpdatedAt != "" {
			if t, err := time.Parse(time.RFC3339, item.UpdatedAt); err == nil {
				fi.LastModified = t
			}
		}
		files = append(files, fi)
	}
	return files, nil
}

type bucketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Public    bool   `json:"public"`
	CreatedAt string `json:"created_at"`
}

// ListBuckets returns every bucket visible to the service key.
func (s *Storage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	resp, err := httpclient.DoJSON[[]bucketItem](ctx, s.client, httpclient.Request{Path: "bucket"})
	if err != nil {
		return nil, fmt.Errorf("storage: supabase list buckets: %w", err)
	}
	buckets := make([]storage.Bucket, 0, len(resp.Data))
	for _, b := range resp.Data {
		bucket := storage.Bucket{ID: b.ID, Name: b.Name, Public: b.Public}
		if t, err := time.Parse(time.RFC3339, b.CreatedAt); err == nil {
			bucket.CreatedAt = t
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignedURL returns a pre-signed URL valid for the specified duration.
func (s *Storage) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	resp, err := httpclient.DoJSON[signResponse](ctx, s.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.objectPath("sign", path),
		Body:   signRequest{ExpiresIn: int(expiry.Seconds())},
	})
	if err != nil {
		if httpclient.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return "", fmt.Errorf("storage: supabase sign: %w", err)
	}
	signed := resp.Data.SignedURL
	if signed == "" {
		return "", fmt.Errorf("storage: supabase sign returned empty URL")
	}
	// signedURL is relative to the storage root.
	if !strings.HasPrefix(signed, "http") {
		return s.baseURL + "/" + strings.TrimLeft(signed, "/"), nil
	}
	return signed, nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
