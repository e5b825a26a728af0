// Package storage provides the object storage contract used by the gallery
// and its backends: Supabase Storage (REST), Amazon S3, MinIO and an
// in-memory bucket for development.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned (wrapped) when an object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// FileInfo contains metadata about a stored object.
type FileInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Bucket describes a storage bucket visible to the configured credentials.
type Bucket struct {
	ID        string
	Name      string
	Public    bool
	CreatedAt time.Time
}

// ListOptions narrows a listing. Search matches object names within the
// prefix by substring. A zero Limit means the backend default.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

// Storage defines the read side of object storage the gallery relies on.
type Storage interface {
	// Download returns a reader for the object at the given path.
	// The caller is responsible for closing the returned ReadCloser.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks whether an object exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL for the object at the given path.
	URL(ctx context.Context, path string) (string, error)

	// List returns metadata for objects under prefix, filtered by opts.
	List(ctx context.Context, prefix string, opts ListOptions) ([]FileInfo, error)

	// ListBuckets returns the buckets accessible to the client.
	ListBuckets(ctx context.Context) ([]Bucket, error)

	// SignedURL returns a pre-signed URL valid for the specified duration.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
