package config

type Config struct {
	Backend BackendConfig `yaml:"backend" toml:"backend"`
	Replay  ReplayConfig  `yaml:"replay" toml:"replay"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Update  UpdateConfig  `yaml:"update" toml:"update"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
	// TimeoutSeconds of 0 leaves the request timeout to the transport.
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type ReplayConfig struct {
	// IntervalMS of 0 presents every step at once; nil means unset.
	IntervalMS *int `yaml:"interval_ms" toml:"interval_ms"`
}

type UIConfig struct {
	Theme           string `yaml:"theme" toml:"theme"`
	TimestampFormat string `yaml:"timestamp_format" toml:"timestamp_format"`
	LogScrollSpeed  int    `yaml:"log_scroll_speed" toml:"log_scroll_speed"`
	ShowLineNumbers *bool  `yaml:"show_line_numbers" toml:"show_line_numbers"`
	DefaultCase     string `yaml:"default_case" toml:"default_case"`
}

type LogConfig struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level"`
}

type UpdateConfig struct {
	Repo string `yaml:"repo" toml:"repo"`
}
