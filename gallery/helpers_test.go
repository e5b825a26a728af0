package gallery_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/storage"
)

// fakeStore records every call and serves a fixed set of object names.
type fakeStore struct {
	mu sync.Mutex

	objects    map[string]bool // paths relative to the folder
	bucketsErr error
	listErr    error
	signErr    error
	signEmpty  bool
	// signGate, when set, blocks SignedURL until it is closed or ctx ends.
	signGate chan struct{}

	bucketCalls int
	listCalls   []storage.ListOptions
	listPrefix  []string
	signCalls   []string
	signExpiry  time.Duration
}

func newFakeStore(names ...string) *fakeStore {
	s := &fakeStore{objects: make(map[string]bool)}
	for _, n := range names {
		s.objects[n] = true
	}
	return s
}

func (s *fakeStore) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrNotFound
}

func (s *fakeStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[strings.TrimPrefix(path, "illustrations/")], nil
}

func (s *fakeStore) URL(_ context.Context, path string) (string, error) {
	return "https://cdn.test/public/" + path, nil
}

func (s *fakeStore) List(_ context.Context, prefix string, opts storage.ListOptions) ([]storage.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = append(s.listCalls, opts)
	s.listPrefix = append(s.listPrefix, prefix)
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []storage.FileInfo
	for name := range s.objects {
		if strings.Contains(name, opts.Search) {
			out = append(out, storage.FileInfo{Path: prefix + "/" + name})
		}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *fakeStore) ListBuckets(context.Context) ([]storage.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucketCalls++
	if s.bucketsErr != nil {
		return nil, s.bucketsErr
	}
	return []storage.Bucket{{ID: "uploads", Name: "uploads"}}, nil
}

func (s *fakeStore) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	gate := s.signGate
	s.signCalls = append(s.signCalls, path)
	s.signExpiry = expiry
	err, empty, n := s.signErr, s.signEmpty, len(s.signCalls)
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if empty {
		return "", nil
	}
	return fmt.Sprintf("https://signed.test/%s?token=%d", path, n), nil
}

func (s *fakeStore) calls() (buckets, lists, signs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucketCalls, len(s.listCalls), len(s.signCalls)
}

func (s *fakeStore) set(fn func(s *fakeStore)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// pagedLister serves items in pages of req.Limit and records each request.
type pagedLister struct {
	mu       sync.Mutex
	items    []gallery.Illustration
	err      error
	gate     chan struct{}
	requests []gallery.PageRequest
}

func (l *pagedLister) List(_ context.Context, req gallery.PageRequest) (*gallery.ListingPage, error) {
	l.mu.Lock()
	l.requests = append(l.requests, req)
	gate, err := l.gate, l.err
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	total := len(l.items)
	pages := (total + req.Limit - 1) / req.Limit
	start := min((req.Page-1)*req.Limit, total)
	end := min(start+req.Limit, total)
	return &gallery.ListingPage{
		Items:       append([]gallery.Illustration(nil), l.items[start:end]...),
		TotalCount:  total,
		CurrentPage: req.Page,
		TotalPages:  pages,
	}, nil
}

func (l *pagedLister) requestCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

func illustrations(n int) []gallery.Illustration {
	out := make([]gallery.Illustration, n)
	for i := range out {
		out[i] = gallery.Illustration{
			ID:       fmt.Sprintf("id-%02d", i+1),
			FilePath: fmt.Sprintf("illustrations/art-%02d.png", i+1),
			Title:    fmt.Sprintf("Art %d", i+1),
		}
	}
	return out
}

var errBoom = errors.New("boom")
