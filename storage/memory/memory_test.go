package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/gallery/storage"
)

func TestListSearchLimitOffset(t *testing.T) {
	s := New("uploads", "memory://uploads")
	s.Put("illustrations/cat.png", []byte("c"), "image/png")
	s.Put("illustrations/catfish.png", []byte("cf"), "image/png")
	s.Put("illustrations/dog.png", []byte("d"), "image/png")
	s.Put("other/cat.png", []byte("x"), "image/png")
	ctx := context.Background()

	files, _ := s.List(ctx, "illustrations", storage.ListOptions{Search: "cat"})
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	files, _ = s.List(ctx, "illustrations", storage.ListOptions{Search: "cat", Limit: 1, Offset: 1})
	if len(files) != 1 || files[0].Path != "illustrations/catfish.png" {
		t.Errorf("files = %+v", files)
	}
	files, _ = s.List(ctx, "illustrations", storage.ListOptions{Search: "bird"})
	if len(files) != 0 {
		t.Errorf("files = %+v, want none", files)
	}
}

func TestSignedURLAndDownload(t *testing.T) {
	s := New("uploads", "memory://uploads")
	s.Put("illustrations/cat.png", []byte("png"), "image/png")
	ctx := context.Background()

	u, err := s.SignedURL(ctx, "illustrations/cat.png", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "memory://uploads/sign/illustrations/cat.png?") || !strings.Contains(u, "expires=3600") {
		t.Errorf("signed url = %q", u)
	}
	if _, err := s.SignedURL(ctx, "illustrations/none.png", time.Hour); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	rc, err := s.Download(ctx, "illustrations/cat.png")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "png" {
		t.Errorf("data = %q", b)
	}
}

func TestFactoryRegistered(t *testing.T) {
	st, err := storage.New(storage.Config{Provider: storage.ProviderMemory}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	buckets, _ := st.ListBuckets(context.Background())
	if len(buckets) != 1 || buckets[0].Name != storage.DefaultBucket {
		t.Errorf("buckets = %+v", buckets)
	}
}
