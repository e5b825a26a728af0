// Package s3 implements storage.Storage on Amazon S3 and S3-compatible
// services.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderS3, func(cfg storage.Config, providerCfg any, log *logger.Logger) (storage.Storage, error) {
		c := Config{}
		if providerCfg != nil {
			pc, ok := providerCfg.(*Config)
			if !ok {
				return nil, fmt.Errorf("s3: expected *s3.Config, got %T", providerCfg)
			}
			c = *pc
		}
		if c.Bucket == "" {
			c.Bucket = cfg.Bucket
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewStorage(context.Background(), &c)
	})
}

// Storage implements storage.Storage using Amazon S3 (or S3-compatible services).
type Storage struct {
	client     *awss3.Client
	presign    *awss3.PresignClient
	bucket     string
	publicBase string
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage builds a client from cfg. cfg must already have defaults
// applied.
func NewStorage(ctx context.Context, cfg *Config) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, cfg.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	client := awss3.NewFromConfig(awsCfg, cfg.clientOptions)
	return &Storage{
		client:     client,
		presign:    awss3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: cfg.publicBase(),
	}, nil
}

// Download returns a reader for the S3 object at the given path.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("storage: s3 download: %w", err)
	}
	return out.Body, nil
}

// Exists checks whether an S3 object exists.
func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("storage: s3 head: %w", err)
	}
	return true, nil
}

// URL links to the object without signing. It only resolves for public
// buckets or a CDN configured as PublicURL.
func (s *Storage) URL(_ context.Context, path string) (string, error) {
	return s.publicBase + "/" + strings.TrimPrefix(path, "/"), nil
}

// List returns objects under prefix whose name (relative to prefix) contains
// opts.Search, skipping opts.Offset matches and returning at most opts.Limit.
func (s *Storage) List(ctx context.Context, prefix string, opts storage.ListOptions) ([]storage.FileInfo, error) {
	folder := strings.TrimSuffix(prefix, "/")
	if folder != "" {
		folder += "/"
	}
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(folder),
	}

	skipped := 0
	var files []storage.FileInfo
	paginator := awss3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: s3 list: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.Contains(strings.TrimPrefix(key, folder), opts.Search) {
				continue
			}
			if skipped < opts.Offset {
				skipped++
				continue
			}
			fi := storage.FileInfo{Path: key, Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				fi.LastModified = *obj.LastModified
			}
			files = append(files, fi)
			if opts.Limit > 0 && len(files) >= opts.Limit {
				return files, nil
			}
		}
	}
	return files, nil
}

// ListBuckets returns the buckets owned by the credentials.
func (s *Storage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	out, err := s.client.ListBuckets(ctx, &awss3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("storage: s3 list buckets: %w", err)
	}
	buckets := make([]storage.Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		name := aws.ToString(b.Name)
		bucket := storage.Bucket{ID: name, Name: name}
		if b.CreationDate != nil {
			bucket.CreatedAt = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// SignedURL returns a presigned GET URL valid for expiry.
func (s *Storage) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("storage: s3 presign: %w", err)
	}
	return req.URL, nil
}
