// Package minio implements storage.Storage with the MinIO client, for
// self-hosted MinIO and other S3-compatible servers.
package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMinio, func(cfg storage.Config, providerCfg any, log *logger.Logger) (storage.Storage, error) {
		pc, ok := providerCfg.(*Config)
		if !ok || pc == nil {
			return nil, fmt.Errorf("minio: expected *minio.Config, got %T", providerCfg)
		}
		c := *pc
		if c.Bucket == "" {
			c.Bucket = cfg.Bucket
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return New(&c, log)
	})
}

// Storage serves one bucket.
type Storage struct {
	client     *mclient.Client
	bucket     string
	publicBase string
	log        *logger.Logger
}

var _ storage.Storage = (*Storage)(nil)

// New creates the client. It does not contact the server.
func New(cfg *Config, log *logger.Logger) (*Storage, error) {
	if log == nil {
		log = logger.NewNop()
	}
	host, secure, err := cfg.hostAndTLS()
	if err != nil {
		return nil, err
	}
	client, err := mclient.New(host, &mclient.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: mclient.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	base := cfg.PublicURL
	if base == "" {
		base = strings.TrimRight(client.EndpointURL().String(), "/") + "/" + cfg.Bucket
	}
	return &Storage{client: client, bucket: cfg.Bucket, publicBase: base, log: log.WithComponent("storage.minio")}, nil
}

// isNotFound matches missing objects and buckets.
func isNotFound(err error) bool {
	resp := mclient.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

// Download stats the object first; GetObject alone defers errors to the
// first Read.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, mclient.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio download: %w", err)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("minio download: %w", err)
	}
	return obj, nil
}

func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path, mclient.StatObjectOptions{})
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	}
	return false, fmt.Errorf("minio stat: %w", err)
}

func (s *Storage) URL(_ context.Context, path string) (string, error) {
	return s.publicBase + "/" + strings.TrimPrefix(path, "/"), nil
}

// List walks the prefix recursively, keeping names that contain
// opts.Search. The walk stops as soon as Limit matches are collected.
func (s *Storage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.FileInfo, error) {
	folder := strings.TrimSuffix(prefix, "/")
	if folder != "" {
		folder += "/"
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		files   []storage.FileInfo
		skipped int
	)
	for obj := range s.client.ListObjects(ctx, s.bucket, mclient.ListObjectsOptions{Prefix: folder, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio list: %w", obj.Err)
		}
		if !strings.Contains(strings.TrimPrefix(obj.Key, folder), opts.Search) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		files = append(files, storage.FileInfo{
			Path:         obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ContentType:  obj.ContentType,
		})
		if opts.Limit > 0 && len(files) == opts.Limit {
			break
		}
	}
	return files, nil
}

func (s *Storage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	infos, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("minio list buckets: %w", err)
	}
	buckets := make([]storage.Bucket, 0, len(infos))
	for _, b := range infos {
		buckets = append(buckets, storage.Bucket{ID: b.Name, Name: b.Name, CreatedAt: b.CreationDate})
	}
	return buckets, nil
}

func (s *Storage) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("minio presign: %w", err)
	}
	return u.String(), nil
}
