package s3

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion applies when the config and the environment name none.
const DefaultRegion = "us-east-1"

// Config is the s3 section. Bucket falls back to storage.bucket. Without
// keys the SDK's default credential chain is used.
type Config struct {
	Bucket         string `mapstructure:"bucket" json:"bucket"`
	Region         string `mapstructure:"region" json:"region"`
	Endpoint       string `mapstructure:"endpoint" json:"endpoint"`
	AccessKey      string `mapstructure:"access_key" json:"access_key"`
	SecretKey      string `mapstructure:"secret_key" json:"-"`
	ForcePathStyle bool   `mapstructure:"force_path_style" json:"force_path_style"`
	// PublicURL replaces "<endpoint>/<bucket>" in public object links, for a
	// CDN in front of the bucket.
	PublicURL string `mapstructure:"public_url" json:"public_url"`
}

func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
}

func (c *Config) Validate() error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		errs = append(errs, errors.New("access_key and secret_key go together"))
	}
	for name, raw := range map[string]string{"endpoint": c.Endpoint, "public_url": c.PublicURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an absolute URL", name, raw))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("s3 config: %w", err)
	}
	return nil
}

func (c *Config) loadOptions() []func(*awsconfig.LoadOptions) error {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	return opts
}

// clientOptions points the client at a custom endpoint. S3-compatible
// gateways (MinIO, Supabase) only serve path-style requests.
func (c *Config) clientOptions(o *awss3.Options) {
	if c.Endpoint != "" {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	}
	if c.ForcePathStyle {
		o.UsePathStyle = true
	}
}

// publicBase is the prefix object keys are appended to.
func (c *Config) publicBase() string {
	switch {
	case c.PublicURL != "":
		return c.PublicURL
	case c.Endpoint != "":
		return c.Endpoint + "/" + c.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}
