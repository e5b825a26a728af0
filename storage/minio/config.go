package minio

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config is the minio section. Endpoint carries the scheme, which decides
// TLS ("http://minio:9000").
type Config struct {
	Endpoint  string `mapstructure:"endpoint" json:"endpoint"`
	AccessKey string `mapstructure:"access_key" json:"access_key"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	// Region skips the bucket location lookup before presigning.
	Region string `mapstructure:"region" json:"region"`
	// Bucket overrides storage.bucket when set.
	Bucket    string `mapstructure:"bucket" json:"bucket"`
	PublicURL string `mapstructure:"public_url" json:"public_url"`
}

func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
}

func (c *Config) Validate() error {
	var errs []error
	if _, _, err := c.hostAndTLS(); err != nil {
		errs = append(errs, err)
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		errs = append(errs, errors.New("access_key and secret_key are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("minio config: %w", err)
	}
	return nil
}

// hostAndTLS splits Endpoint into the host minio-go dials and whether to use
// TLS. A bare host means TLS.
func (c *Config) hostAndTLS() (string, bool, error) {
	if c.Endpoint == "" {
		return "", false, errors.New("endpoint is required")
	}
	if !strings.Contains(c.Endpoint, "://") {
		return c.Endpoint, true, nil
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("endpoint %q is not a valid URL", c.Endpoint)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	}
	return "", false, fmt.Errorf("endpoint scheme %q is not http or https", u.Scheme)
}
