package web

import (
	"errors"
	"strings"
)

// Site holds the constants shown across the public pages.
type Site struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	URL         string   `yaml:"url" mapstructure:"url"`
	Email       string   `yaml:"email" mapstructure:"email"`
	Description string   `yaml:"description" mapstructure:"description"`
	About       []string `yaml:"about" mapstructure:"about"`
}

// ApplyDefaults fills in zero-value fields.
func (s *Site) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "Illustrations"
	}
	if s.URL == "" {
		s.URL = "http://localhost:8080"
	}
	if s.Description == "" {
		s.Description = "A gallery of illustrations."
	}
	s.URL = strings.TrimRight(s.URL, "/")
}

// Validate checks that the site URL is absolute.
func (s *Site) Validate() error {
	if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
		return errors.New("site.url must be an absolute http(s) URL")
	}
	return nil
}
