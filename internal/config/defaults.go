package config

import "time"

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Replay: ReplayConfig{
			IntervalMS: intPtr(1000),
		},
		UI: UIConfig{
			Theme:           "default",
			TimestampFormat: "15:04:05",
			LogScrollSpeed:  3,
			ShowLineNumbers: boolPtr(true),
			DefaultCase:     "preorder",
		},
		Log: LogConfig{
			Level: "info",
		},
		Update: UpdateConfig{
			Repo: "justinpbarnett/autodebug",
		},
	}
}

// ReplayInterval returns the pacing delay between presented repair steps.
func (c *Config) ReplayInterval() time.Duration {
	if c.Replay.IntervalMS == nil {
		return 0
	}
	return time.Duration(*c.Replay.IntervalMS) * time.Millisecond
}

// RequestTimeout returns the HTTP request timeout, or zero for the transport default.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
