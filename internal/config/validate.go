package config

import (
	"fmt"
	"strings"
)

// Provider dialect names accepted by ProviderConfig.Dialect.
const (
	DialectEmbedded   = "embedded"
	DialectStructured = "structured"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	return nil
}

func (p *ProviderConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.Dialect)) {
	case DialectEmbedded, DialectStructured:
	default:
		return fmt.Errorf("dialect must be %q or %q (got %q)", DialectEmbedded, DialectStructured, p.Dialect)
	}

	if p.SearchLimit < 1 {
		return fmt.Errorf("search_limit must be >= 1 (got %d)", p.SearchLimit)
	}
	if p.SizingConcurrency < 1 {
		return fmt.Errorf("sizing_concurrency must be >= 1 (got %d)", p.SizingConcurrency)
	}
	if !strings.HasPrefix(p.BaseURL, "http://") && !strings.HasPrefix(p.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", p.BaseURL)
	}

	return nil
}
