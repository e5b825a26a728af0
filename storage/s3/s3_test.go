package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/gallery/storage"
)

const listXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>uploads</Name>
  <Prefix>illustrations/</Prefix>
  <KeyCount>3</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>illustrations/cat.png</Key><Size>10</Size><LastModified>2024-05-01T10:00:00.000Z</LastModified></Contents>
  <Contents><Key>illustrations/dog.png</Key><Size>20</Size><LastModified>2024-05-01T10:00:00.000Z</LastModified></Contents>
  <Contents><Key>illustrations/catfish.png</Key><Size>30</Size><LastModified>2024-05-01T10:00:00.000Z</LastModified></Contents>
</ListBucketResult>`

func newTestStorage(t *testing.T, endpoint string) *Storage {
	t.Helper()
	cfg := &Config{
		Bucket:    "uploads",
		Endpoint:  endpoint,
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	}
	cfg.ApplyDefaults()
	s, err := NewStorage(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestListFiltersBySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uploads" && r.URL.Path != "/uploads/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("prefix"); got != "illustrations/" {
			t.Errorf("prefix = %q", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, listXML)
	}))
	defer srv.Close()

	s := newTestStorage(t, srv.URL)

	files, err := s.List(context.Background(), "illustrations", storage.ListOptions{Search: "cat"})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2: %+v", len(files), files)
	}

	files, err = s.List(context.Background(), "illustrations", storage.ListOptions{Search: "cat", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "illustrations/catfish.png" {
		t.Errorf("files = %+v", files)
	}
}

func TestSignedURLIsPresigned(t *testing.T) {
	s := newTestStorage(t, "http://localhost:9000")

	u, err := s.SignedURL(context.Background(), "illustrations/cat.png", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "http://localhost:9000/uploads/illustrations/cat.png?") {
		t.Errorf("url = %q", u)
	}
	for _, want := range []string{"X-Amz-Signature=", "X-Amz-Expires=3600"} {
		if !strings.Contains(u, want) {
			t.Errorf("url %q missing %s", u, want)
		}
	}
}

func TestPublicURL(t *testing.T) {
	s := newTestStorage(t, "http://localhost:9000/")
	u, _ := s.URL(context.Background(), "illustrations/cat.png")
	if u != "http://localhost:9000/uploads/illustrations/cat.png" {
		t.Errorf("url = %q", u)
	}
}

func TestPublicURLBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"aws", Config{Bucket: "uploads", Region: "eu-west-1"}, "https://uploads.s3.eu-west-1.amazonaws.com"},
		{"endpoint", Config{Bucket: "uploads", Endpoint: "http://minio:9000/"}, "http://minio:9000/uploads"},
		{"cdn", Config{Bucket: "uploads", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example/art/"}, "https://cdn.example/art"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			if got := tt.cfg.publicBase(); got != tt.want {
				t.Errorf("publicBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Bucket: "uploads", Region: "eu-west-1"}, false},
		{"missing bucket", Config{Region: "eu-west-1"}, true},
		{"half credentials", Config{Bucket: "uploads", Region: "eu-west-1", AccessKey: "a"}, true},
		{"relative endpoint", Config{Bucket: "uploads", Region: "eu-west-1", Endpoint: "minio:9000"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
