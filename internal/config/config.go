package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Default limits for the resolution pipeline
const (
	DefaultFetchTimeoutMs = 30_000
	DefaultMaxBodyBytes   = 64 * 1024 * 1024 // bundles routinely reach tens of MB
	DefaultMaxConcurrent  = 4

	DefaultMaxTranslatedLine = 100_000 // original files beyond this are too large to parse safely
)

type Config struct {
	Fetch   Fetch
	Resolve Resolve

	// Allow and Deny are doublestar globs matched against bundle URLs.
	// Empty Allow admits every URL; Deny wins over Allow.
	Allow []string
	Deny  []string
}

type Fetch struct {
	TimeoutMs     int
	MaxBodyBytes  int64
	MaxConcurrent int
	UserAgent     string
}

type Resolve struct {
	MaxTranslatedLine int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Fetch: Fetch{
			TimeoutMs:     DefaultFetchTimeoutMs,
			MaxBodyBytes:  DefaultMaxBodyBytes,
			MaxConcurrent: DefaultMaxConcurrent,
		},
		Resolve: Resolve{
			MaxTranslatedLine: DefaultMaxTranslatedLine,
		},
		Allow: []string{},
		Deny:  []string{},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Fetch.TimeoutMs <= 0 {
		return fmt.Errorf("fetch timeout_ms must be positive, got %d", c.Fetch.TimeoutMs)
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	}
	if c.Fetch.MaxConcurrent <= 0 {
		return fmt.Errorf("fetch max_concurrent must be positive, got %d", c.Fetch.MaxConcurrent)
	}
	if c.Resolve.MaxTranslatedLine <= 0 {
		return fmt.Errorf("resolve max_translated_line must be positive, got %d", c.Resolve.MaxTranslatedLine)
	}
	for _, pattern := range append(append([]string{}, c.Allow...), c.Deny...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid URL pattern %q", pattern)
		}
	}
	return nil
}

// AllowsURL applies the Allow/Deny globs to a bundle URL.
func (c *Config) AllowsURL(url string) bool {
	for _, pattern := range c.Deny {
		if matched, err := doublestar.Match(pattern, url); err == nil && matched {
			return false
		}
	}
	if len(c.Allow) == 0 {
		return true
	}
	for _, pattern := range c.Allow {
		if matched, err := doublestar.Match(pattern, url); err == nil && matched {
			return true
		}
	}
	return false
}
