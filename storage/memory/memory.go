// Package memory is an in-process storage.Storage for local development and
// tests. Signed URLs are opaque tokens under a configurable base URL.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMemory, func(cfg storage.Config, _ any, _ *logger.Logger) (storage.Storage, error) {
		return New(cfg.Bucket, "memory://"+cfg.Bucket), nil
	})
}

type object struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// Storage keeps objects of a single bucket in a map.
type Storage struct {
	mu      sync.RWMutex
	bucket  string
	baseURL string
	objects map[string]*object
}

var _ storage.Storage = (*Storage)(nil)

// New creates an empty in-memory bucket.
func New(bucket, baseURL string) *Storage {
	return &Storage{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]*object),
	}
}

// Put stores data at path, replacing any existing object.
func (s *Storage) Put(path string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = &object{data: bytes.Clone(data), contentType: contentType, modTime: time.Now()}
}

func (s *Storage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *Storage) URL(_ context.Context, path string) (string, error) {
	return s.baseURL + "/public/" + path, nil
}

func (s *Storage) List(_ context.Context, prefix string, opts storage.ListOptions) ([]storage.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folder := strings.TrimSuffix(prefix, "/")
	if folder != "" {
		folder += "/"
	}
	var files []storage.FileInfo
	for p, obj := range s.objects {
		name, ok := strings.CutPrefix(p, folder)
		if !ok || !strings.Contains(name, opts.Search) {
			continue
		}
		files = append(files, storage.FileInfo{
			Path:         p,
			Size:         int64(len(obj.data)),
			LastModified: obj.modTime,
			ContentType:  obj.contentType,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if opts.Offset >= len(files) {
		return nil, nil
	}
	files = files[opts.Offset:]
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}
	return files, nil
}

func (s *Storage) ListBuckets(context.Context) ([]storage.Bucket, error) {
	return []storage.Bucket{{ID: s.bucket, Name: s.bucket}}, nil
}

// SignedURL issues a token URL. Signing a missing object fails like the
// hosted backends do.
func (s *Storage) SignedURL(_ context.Context, path string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[path]; !ok {
		return "", fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	token := uuid.NewString()
	q := url.Values{"token": {token}, "expires": {fmt.Sprint(int(expiry.Seconds()))}}
	return s.baseURL + "/sign/" + path + "?" + q.Encode(), nil
}
