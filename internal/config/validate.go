package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency. All checks run and
// errors are collected, not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	u, err := url.Parse(cfg.Backend.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Sprintf("backend.base_url %q is not a valid URL: %v", cfg.Backend.BaseURL, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Sprintf("backend.base_url %q must use http or https", cfg.Backend.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Sprintf("backend.base_url %q has no host", cfg.Backend.BaseURL))
	}

	if cfg.Backend.TimeoutSeconds < 0 {
		errs = append(errs, "backend.timeout_seconds must not be negative")
	}
	if cfg.Replay.IntervalMS != nil && *cfg.Replay.IntervalMS < 0 {
		errs = append(errs, "replay.interval_ms must not be negative")
	}
	if cfg.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}
	switch cfg.UI.Theme {
	case "default", "dark", "light":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be one of default, dark, light", cfg.UI.Theme))
	}
	if strings.TrimSpace(cfg.UI.TimestampFormat) == "" {
		errs = append(errs, "ui.timestamp_format must not be empty")
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
