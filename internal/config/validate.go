package config

import (
	"fmt"
	"net/url"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError describes a single invalid setting.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks the settings for values the rest of the program cannot use.
func Validate(c *Config) []ValidationError {
	var errs []ValidationError

	if c.Model == "" {
		errs = append(errs, ValidationError{"model", "required"})
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, ValidationError{"max_tokens", fmt.Sprintf("must be > 0, got %d", c.MaxTokens)})
	}
	if c.Timeout < 0 {
		errs = append(errs, ValidationError{"timeout", "must not be negative"})
	}
	if c.Concurrency < 1 {
		errs = append(errs, ValidationError{"concurrency", fmt.Sprintf("must be >= 1, got %d", c.Concurrency)})
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{"base_url", fmt.Sprintf("not an http(s) URL: %q", c.BaseURL)})
		}
	}

	if len(c.Include) == 0 {
		errs = append(errs, ValidationError{"include", "at least one glob required"})
	}
	for i, g := range c.Include {
		if !doublestar.ValidatePattern(g) {
			errs = append(errs, ValidationError{fmt.Sprintf("include[%d]", i), fmt.Sprintf("invalid glob: %q", g)})
		}
	}
	for i, g := range c.Exclude {
		if !doublestar.ValidatePattern(g) {
			errs = append(errs, ValidationError{fmt.Sprintf("exclude[%d]", i), fmt.Sprintf("invalid glob: %q", g)})
		}
	}

	return errs
}
